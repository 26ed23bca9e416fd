// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mpetrenko/hh-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVacancy outputs a human-readable summary of one vacancy.
func (p *Printer) PrintVacancy(v *types.Vacancy) {
	if v == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:      %s\n", v.Title))
	sb.WriteString(fmt.Sprintf("Company:    %s\n", v.CompanyName))
	sb.WriteString(fmt.Sprintf("Salary:     %s\n", salaryLine(*v)))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", v.Experience))
	if v.Remote {
		sb.WriteString("Remote:     yes\n")
	}
	sb.WriteString(fmt.Sprintf("URL:        %s", v.URL))

	p.printBox("VACANCY", sb.String())
}

// PrintVacancyList outputs the top vacancies of a result set with salary and
// company, truncated to a handful of rows.
func (p *Printer) PrintVacancyList(vacancies []types.Vacancy) {
	if len(vacancies) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total vacancies: %d\n\n", len(vacancies)))

	count := min(len(vacancies), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := vacancies[i]
		title := v.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %s\n", v.CompanyName))
		sb.WriteString(fmt.Sprintf("    %s", salaryLine(v)))
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}

	if len(vacancies) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more vacancies", len(vacancies)-maxItemsToShow))
	}

	p.printBox("VACANCIES", sb.String())
}

// PrintIngestSummary outputs the outcome counters of one ingestion batch.
func (p *Printer) PrintIngestSummary(keywords string, found, companies, processed, saved int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Keywords:   %s\n", keywords))
	sb.WriteString(fmt.Sprintf("Found:      %d vacancies (%d companies)\n", found, companies))
	sb.WriteString(fmt.Sprintf("Processed:  %d\n", processed))
	sb.WriteString(fmt.Sprintf("Saved:      %d", saved))
	if processed > saved {
		sb.WriteString(fmt.Sprintf("  (%d already up to date)", processed-saved))
	}

	p.printBox("INGEST SUMMARY", sb.String())
}

func salaryLine(v types.Vacancy) string {
	switch {
	case v.SalaryFrom != nil && v.SalaryTo != nil:
		return fmt.Sprintf("%d to %d %s", *v.SalaryFrom, *v.SalaryTo, v.Currency)
	case v.SalaryFrom != nil:
		return fmt.Sprintf("from %d %s", *v.SalaryFrom, v.Currency)
	case v.SalaryTo != nil:
		return fmt.Sprintf("up to %d %s", *v.SalaryTo, v.Currency)
	default:
		return "not stated"
	}
}
