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

var avgSalaryCmd = &cobra.Command{
	Use:   "avg-salary",
	Short: "Show the average salary over stored vacancies",
	RunE:  runAvgSalary,
}

var topSalaryCmd = &cobra.Command{
	Use:   "top-salary",
	Short: "List vacancies paying above the average salary",
	RunE:  runTopSalary,
}

var (
	topSalaryPage    int
	topSalaryPerPage int
)

func init() {
	topSalaryCmd.Flags().IntVar(&topSalaryPage, "page", 1, "Page number")
	topSalaryCmd.Flags().IntVar(&topSalaryPerPage, "per-page", query.DefaultPerPage, "Results per page")

	rootCmd.AddCommand(avgSalaryCmd)
	rootCmd.AddCommand(topSalaryCmd)
}

func runAvgSalary(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		service := query.NewService(database)

		avg, ok, err := service.AverageSalary(ctx)
		if err != nil {
			reportEmpty("average salary", err)
			return nil
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "No vacancies with salary data yet.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "Average salary: %.2f\n", avg)
		return nil
	})
}

func runTopSalary(cmd *cobra.Command, args []string) error {
	return withDB(func(ctx context.Context, cfg *config.Config, database *db.DB) error {
		service := query.NewService(database)

		items, err := service.TopSalary(ctx, topSalaryPage, topSalaryPerPage)
		if err != nil || len(items) == 0 {
			reportEmpty("top salary vacancies", err)
			return nil
		}
		printVacancies(items)
		return nil
	})
}
