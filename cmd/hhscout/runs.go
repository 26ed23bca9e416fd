package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	RunE:  runRuns,
}

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to show")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		runs, err := database.ListRuns(ctx, runsLimit)
		if err != nil || len(runs) == 0 {
			reportEmpty("ingest runs", err)
			return nil
		}

		for _, r := range runs {
			fmt.Fprintf(os.Stdout, "%s  %-9s  %q  found=%d processed=%d saved=%d  %s\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.Status, r.Keyword,
				r.Found, r.Processed, r.Saved, r.ID)
		}
		return nil
	})
}
