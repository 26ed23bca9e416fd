// Package main provides the hhscout command line interface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
)

var rootCmd = &cobra.Command{
	Use:   "hhscout",
	Short: "HH.ru vacancy ingestion and query tool",
	Long:  "hhscout fetches job vacancies from the HH.ru search API, stores them in PostgreSQL with idempotent upserts, and answers salary, aggregation and keyword-search queries.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withDB loads configuration, opens the database and hands both to fn,
// closing the pool afterwards.
func withDB(fn func(ctx context.Context, cfg *config.Config, database *db.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(ctx, cfg, database)
}
