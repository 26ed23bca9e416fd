package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/observability"
	"github.com/mpetrenko/hh-scout/internal/query"
)

var vacanciesCmd = &cobra.Command{
	Use:   "vacancies",
	Short: "List stored vacancies",
	Long:  "List all stored vacancies ordered by company then title, or the vacancies of one company with --company.",
	RunE:  runVacancies,
}

var (
	vacanciesPage    int
	vacanciesPerPage int
	vacanciesCompany string
	vacanciesURL     string
)

func init() {
	vacanciesCmd.Flags().IntVar(&vacanciesPage, "page", 1, "Page number")
	vacanciesCmd.Flags().IntVar(&vacanciesPerPage, "per-page", query.DefaultPerPage, "Results per page")
	vacanciesCmd.Flags().StringVar(&vacanciesCompany, "company", "", "Only vacancies of this company")
	vacanciesCmd.Flags().StringVar(&vacanciesURL, "url", "", "Show one vacancy by its posting URL")

	rootCmd.AddCommand(vacanciesCmd)
}

func runVacancies(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		service := query.NewService(database)

		if vacanciesURL != "" {
			v, err := database.GetVacancy(ctx, vacanciesURL)
			if err != nil || v == nil {
				reportEmpty("vacancy by url", err)
				return nil
			}
			observability.NewPrinter(os.Stdout).PrintVacancy(v)
			return nil
		}

		if vacanciesCompany != "" {
			items, err := service.ByCompany(ctx, vacanciesCompany)
			if err != nil || len(items) == 0 {
				reportEmpty("vacancies by company", err)
				return nil
			}
			printVacancies(items)
			return nil
		}

		items, total, err := service.Vacancies(ctx, vacanciesPage, vacanciesPerPage)
		if err != nil || len(items) == 0 {
			reportEmpty("vacancies", err)
			return nil
		}
		printVacancies(items)
		fmt.Fprintf(os.Stdout, "Page %d of %d vacancies total\n", vacanciesPage, total)
		return nil
	})
}
