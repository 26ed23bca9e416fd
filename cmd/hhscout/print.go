package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mpetrenko/hh-scout/internal/types"
)

// printVacancies writes a readable listing of vacancies to stdout.
func printVacancies(vacancies []types.Vacancy) {
	for _, v := range vacancies {
		fmt.Fprintf(os.Stdout, "%s — %s\n", v.CompanyName, v.Title)
		fmt.Fprintf(os.Stdout, "  salary: %s  experience: %s  remote: %v\n",
			formatSalary(v), v.Experience, v.Remote)
		fmt.Fprintf(os.Stdout, "  %s\n", v.URL)
	}
}

func formatSalary(v types.Vacancy) string {
	switch {
	case v.SalaryFrom != nil && v.SalaryTo != nil:
		return fmt.Sprintf("%d–%d %s", *v.SalaryFrom, *v.SalaryTo, v.Currency)
	case v.SalaryFrom != nil:
		return fmt.Sprintf("from %d %s", *v.SalaryFrom, v.Currency)
	case v.SalaryTo != nil:
		return fmt.Sprintf("up to %d %s", *v.SalaryTo, v.Currency)
	default:
		return "not stated"
	}
}

// reportEmpty logs a read failure and prints an empty result instead of
// failing the command. Read queries degrade; they never crash the CLI.
func reportEmpty(what string, err error) {
	if err != nil {
		log.Printf("[query] %s failed: %v", what, err)
	}
	fmt.Fprintln(os.Stdout, "No results.")
}
