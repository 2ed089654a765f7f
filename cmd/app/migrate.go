package main

import (
	"context"

	"github.com/ElSheemy11/High-Up/internal/migrations"
	"github.com/urfave/cli/v3"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Apply or revert database migrations",
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Action: func(ctx context.Context, c *cli.Command) error {
				return withMigrator(c, func(m *migrations.Migrator) error { return m.Up() })
			},
		},
		{
			Name:  "down",
			Usage: "Revert the latest migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return withMigrator(c, func(m *migrations.Migrator) error { return m.Down() })
			},
		},
	},
}

func withMigrator(c *cli.Command, fn func(m *migrations.Migrator) error) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := migrations.New(logger, cfg.Postgres.DSN)
	if err != nil {
		logger.Sugar().Errorf("failed to open migrations: %s", err.Error())
		return err
	}
	defer m.Close()

	return fn(m)
}
