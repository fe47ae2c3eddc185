package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prath-way/boitech/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Also purges predictions whose date has already passed.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("purge", true, "remove expired predictions after migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	purge, _ := cmd.Flags().GetBool("purge")

	slog.Info("Running database migrations", "target_version", storage.ExpectedSchemaVersion)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer closeStorage(store)

	if purge {
		removed, err := store.PurgeExpired(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge expired predictions: %w", err)
		}
		if removed > 0 {
			slog.Info("Purged expired predictions", "count", removed)
		}
	}

	slog.Info("Database migrations completed")

	return nil
}
