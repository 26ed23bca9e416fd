package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/fetch"
	"github.com/mpetrenko/hh-scout/internal/hh"
	"github.com/mpetrenko/hh-scout/internal/ingest"
	"github.com/mpetrenko/hh-scout/internal/observability"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch vacancies from HH.ru and store them",
	Long:  "Fetch vacancies for one or more search keywords or companies and upsert them into the database as a single transactional batch.",
	RunE:  runIngest,
}

var (
	ingestKeywords  []string
	ingestCompanyID string
	ingestPerPage   int
	ingestMaxPages  int
	ingestVerbose   bool
)

func init() {
	ingestCmd.Flags().StringSliceVarP(&ingestKeywords, "keyword", "k", nil, "Search keyword or company name (repeatable)")
	ingestCmd.Flags().StringVar(&ingestCompanyID, "company-id", "", "Known HH.ru employer ID for the keyword")
	ingestCmd.Flags().IntVar(&ingestPerPage, "per-page", 0, "Vacancies per page (default from config)")
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 0, "Maximum pages to fetch per keyword (default from config)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print a formatted batch summary")

	_ = ingestCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestCompanyID != "" && len(ingestKeywords) != 1 {
		return fmt.Errorf("--company-id applies to exactly one --keyword")
	}

	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		perPage := ingestPerPage
		if perPage <= 0 {
			perPage = cfg.PerPage
		}
		maxPages := ingestMaxPages
		if maxPages <= 0 {
			maxPages = cfg.MaxPages
		}

		opts := fetch.DefaultOptions()
		opts.Timeout = cfg.FetchTimeout
		client := hh.NewClient(cfg.HHBaseURL, opts)
		service := ingest.NewService(client, ingest.PgStore{DB: database}, perPage, maxPages)

		targets := make([]ingest.Target, 0, len(ingestKeywords))
		for _, keyword := range ingestKeywords {
			targets = append(targets, ingest.Target{Keyword: keyword, CompanyID: ingestCompanyID})
		}

		stats, err := service.Run(ctx, targets)
		if err != nil {
			return err
		}

		if ingestVerbose {
			printer := observability.NewPrinter(os.Stdout)
			printer.PrintIngestSummary(strings.Join(ingestKeywords, ", "),
				stats.Found, stats.Companies, stats.Processed, stats.Saved)
			return nil
		}

		fmt.Fprintf(os.Stdout, "Found %d vacancies (%d companies)\n", stats.Found, stats.Companies)
		fmt.Fprintf(os.Stdout, "Processed %d, saved %d\n", stats.Processed, stats.Saved)
		return nil
	})
}
