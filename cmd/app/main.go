package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ElSheemy11/High-Up/internal/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const VERSION = "0.1.0"

var configDirFlag = &cli.StringFlag{
	Name:    "config-dir",
	Aliases: []string{"c"},
	Usage:   "Directory holding app.yaml and .env",
	Value:   ".",
	Sources: cli.EnvVars("CONFIG_DIR"),
}

var cmd = &cli.Command{
	Name:    "high-up",
	Usage:   "Social graph and engagement service",
	Version: VERSION,
	Flags: []cli.Flag{
		configDirFlag,
	},
	Commands: []*cli.Command{
		serveCmd,
		migrateCmd,
		devTokenCmd,
	},
}

func main() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String(configDirFlag.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
