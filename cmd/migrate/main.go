package main

// Run database migrations:
//   go run ./cmd/migrate          (apply all)
//   go run ./cmd/migrate down     (revert the latest)
//   go run ./cmd/migrate version

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"cloud-savings/internal/shared/config"
	"cloud-savings/internal/shared/storage/db"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the delivery-log schema",
		Action: func(c *cli.Context) error {
			return withDB(c.Context, db.RunMigrations)
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withDB(c.Context, db.RunMigrations)
				},
			},
			{
				Name:  "down",
				Usage: "revert the latest migration",
				Action: func(c *cli.Context) error {
					return withDB(c.Context, db.RollbackLast)
				},
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					return withDB(c.Context, func(ctx context.Context, sqlDB *sql.DB) error {
						v, err := db.Version(ctx, sqlDB)
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, v)
						return nil
					})
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg := config.Load()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()
	return fn(ctx, sqlDB)
}
