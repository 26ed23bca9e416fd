package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrenko/hh-scout/internal/config"
	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/observability"
	"github.com/mpetrenko/hh-scout/internal/query"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored vacancies by keywords",
	Long:  "Search stored vacancies. The keyword splits on whitespace into terms; each term matches any of the search fields, and terms combine with AND or OR.",
	RunE:  runSearch,
}

var (
	searchKeyword   string
	searchFields    []string
	searchCompany   string
	searchMinSalary int
	searchMaxSalary int
	searchExact     bool
	searchOperator  string
	searchPage      int
	searchPerPage   int
	searchVerbose   bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "Search terms, whitespace separated")
	searchCmd.Flags().StringSliceVar(&searchFields, "fields", nil, "Fields to search: title, description, experience (default all)")
	searchCmd.Flags().StringVar(&searchCompany, "company", "", "Company name substring filter")
	searchCmd.Flags().IntVar(&searchMinSalary, "min-salary", 0, "Minimum average salary, inclusive")
	searchCmd.Flags().IntVar(&searchMaxSalary, "max-salary", 0, "Maximum average salary, inclusive")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Require full-field matches instead of substrings")
	searchCmd.Flags().StringVar(&searchOperator, "operator", "AND", "How terms combine: AND or OR")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page number")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", query.DefaultPerPage, "Results per page")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print a formatted result box")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		service := query.NewService(database)

		filter := query.Filter{
			Keyword:    searchKeyword,
			Fields:     searchFields,
			Company:    searchCompany,
			ExactMatch: searchExact,
			Operator:   searchOperator,
			Page:       searchPage,
			PerPage:    searchPerPage,
		}
		if cmd.Flags().Changed("min-salary") {
			filter.MinSalary = &searchMinSalary
		}
		if cmd.Flags().Changed("max-salary") {
			filter.MaxSalary = &searchMaxSalary
		}

		items, err := service.Search(ctx, filter)
		if err != nil || len(items) == 0 {
			reportEmpty("search", err)
			return nil
		}
		if searchVerbose {
			observability.NewPrinter(os.Stdout).PrintVacancyList(items)
			return nil
		}
		printVacancies(items)
		return nil
	})
}
