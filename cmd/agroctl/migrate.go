package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
)

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
				if err := repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
				return repomanager.NewPostgresRepositoryManager().MigrationStatus(ctx, db)
			})
		},
	})

	return cmd
}

func (c *cli) withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	db, err := c.openDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(ctx, db)
}
