package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
)

var setupDBCmd = &cobra.Command{
	Use:   "setup-db",
	Short: "Create the database schema",
	Long:  "Create the companies, vacancies and ingest_runs tables if they do not exist.",
	RunE:  runSetupDB,
}

func init() {
	rootCmd.AddCommand(setupDBCmd)
}

func runSetupDB(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		if err := database.Setup(ctx); err != nil {
			return fmt.Errorf("failed to set up schema: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Database schema is ready")
		return nil
	})
}
