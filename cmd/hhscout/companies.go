package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/query"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies with their vacancy counts",
	RunE:  runCompanies,
}

var (
	companiesPage    int
	companiesPerPage int
)

func init() {
	companiesCmd.Flags().IntVar(&companiesPage, "page", 1, "Page number")
	companiesCmd.Flags().IntVar(&companiesPerPage, "per-page", query.DefaultPerPage, "Results per page")

	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		service := query.NewService(database)

		items, total, err := service.Companies(ctx, companiesPage, companiesPerPage)
		if err != nil || len(items) == 0 {
			reportEmpty("companies", err)
			return nil
		}

		for _, item := range items {
			fmt.Fprintf(os.Stdout, "%-40s %d vacancies\n", item.Company.Name, item.VacancyCount)
		}
		fmt.Fprintf(os.Stdout, "Page %d of %d companies total\n", companiesPage, total)
		return nil
	})
}
