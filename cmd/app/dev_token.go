package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ElSheemy11/High-Up/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v3"
)

var devTokenCmd = &cli.Command{
	Name:  "dev-token",
	Usage: "Mint a session token signed with SESSION_SECRET for local testing",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "sub", Usage: "External identity key", Required: true},
		&cli.StringFlag{Name: "username", Usage: "Preferred handle"},
		&cli.StringFlag{Name: "email", Usage: "Contact address"},
		&cli.StringFlag{Name: "given-name", Usage: "First name"},
		&cli.StringFlag{Name: "family-name", Usage: "Last name"},
		&cli.DurationFlag{Name: "ttl", Usage: "Token lifetime", Value: 24 * time.Hour},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, _, err := loadConfig(c)
		if err != nil {
			return err
		}
		if err := cfg.Session.RequireSecret(); err != nil {
			return err
		}

		claims := jwt.MapClaims{"sub": c.String("sub")}
		for flag, claim := range map[string]string{
			"username":    "username",
			"email":       "email",
			"given-name":  "given_name",
			"family-name": "family_name",
		} {
			if value := c.String(flag); value != "" {
				claims[claim] = value
			}
		}

		token, err := utils.NewJWT(jwt.SigningMethodHS256, []byte(cfg.Session.Secret), claims, c.Duration("ttl"))
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}
