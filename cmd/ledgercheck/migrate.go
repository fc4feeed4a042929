package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgercheck/internal/cli"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Migrations also run automatically whenever a command opens the store.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting database migration",
		"driver", cfg.Database.Driver,
		"status_only", status)

	store, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if status {
		current, versionErr := store.SchemaVersion(ctx)
		if versionErr != nil {
			return versionErr
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  Current version: %d\n  Latest version:  %d\n",
			cli.FormatTitle("📊 Database Migration Status"), current, storage.ExpectedSchemaVersion)
		return err
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	common.LogInfo("Database migrations completed", common.Fields{
		"driver":  cfg.Database.Driver,
		"version": storage.ExpectedSchemaVersion,
	})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Database migrations completed successfully!"))
	return err
}
