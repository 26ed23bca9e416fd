package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpetrenko/hh-scout/internal/types"
)

// Match operators for multi-term search.
const (
	OperatorAnd = "AND"
	OperatorOr  = "OR"
)

// searchableColumns maps caller-facing field names to their columns.
var searchableColumns = map[string]string{
	"title":       "v.vacancy_name",
	"description": "v.requirements",
	"experience":  "v.experience",
}

// DefaultSearchFields are searched when the caller does not narrow the set.
var DefaultSearchFields = []string{"title", "description", "experience"}

// SearchCriteria describes a vacancy search. An empty keyword matches
// everything; the remaining filters still apply.
type SearchCriteria struct {
	Keyword      string
	SearchFields []string
	CompanyName  string
	MinSalary    *int
	MaxSalary    *int
	ExactMatch   bool
	Operator     string
	Limit        int
	Offset       int
}

// SearchVacancies runs a multi-keyword search. The keyword splits on
// whitespace into terms; each term matches if it matches any search field, and
// the per-term results combine with the requested operator. Results are
// ordered by average salary descending with absent salaries last, then company
// name, then title, so pagination is stable.
func (db *DB) SearchVacancies(ctx context.Context, criteria SearchCriteria) ([]types.Vacancy, error) {
	query, args, err := buildSearchQuery(criteria)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search vacancies: %w", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

// buildSearchQuery translates criteria into SQL and arguments. Split out so
// the translation is testable without a database.
func buildSearchQuery(criteria SearchCriteria) (string, []any, error) {
	columns, err := resolveSearchColumns(criteria.SearchFields)
	if err != nil {
		return "", nil, err
	}

	operator := strings.ToUpper(strings.TrimSpace(criteria.Operator))
	if operator == "" {
		operator = OperatorAnd
	}
	if operator != OperatorAnd && operator != OperatorOr {
		return "", nil, fmt.Errorf("unknown operator %q", criteria.Operator)
	}

	query := `SELECT ` + vacancyColumns + `
	 FROM vacancies v
	 LEFT JOIN companies c ON c.company_id = v.company_id
	 WHERE 1=1`
	args := []any{}
	argNum := 1

	// Per-term disjunction over the search fields, terms combined with the
	// requested operator. An empty keyword is vacuously true.
	terms := strings.Fields(criteria.Keyword)
	if len(terms) > 0 {
		var groups []string
		for _, term := range terms {
			var fields []string
			for _, col := range columns {
				if criteria.ExactMatch {
					fields = append(fields, fmt.Sprintf("LOWER(%s) = LOWER($%d)", col, argNum))
					args = append(args, term)
				} else {
					fields = append(fields, fmt.Sprintf("%s ILIKE $%d", col, argNum))
					args = append(args, "%"+term+"%")
				}
				argNum++
			}
			groups = append(groups, "("+strings.Join(fields, " OR ")+")")
		}
		query += " AND (" + strings.Join(groups, " "+operator+" ") + ")"
	}

	if criteria.CompanyName != "" {
		query += fmt.Sprintf(" AND COALESCE(c.company_name, v.company_name, '') ILIKE $%d", argNum)
		args = append(args, "%"+criteria.CompanyName+"%")
		argNum++
	}
	if criteria.MinSalary != nil {
		query += fmt.Sprintf(" AND %s >= $%d", avgSalaryExpr, argNum)
		args = append(args, *criteria.MinSalary)
		argNum++
	}
	if criteria.MaxSalary != nil {
		query += fmt.Sprintf(" AND %s <= $%d", avgSalaryExpr, argNum)
		args = append(args, *criteria.MaxSalary)
		argNum++
	}

	query += ` ORDER BY ` + avgSalaryExpr + ` DESC NULLS LAST,
	 COALESCE(c.company_name, v.company_name, '') ASC,
	 v.vacancy_name ASC`

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, criteria.Limit, criteria.Offset)

	return query, args, nil
}

func resolveSearchColumns(fields []string) ([]string, error) {
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := searchableColumns[strings.ToLower(strings.TrimSpace(f))]
		if !ok {
			return nil, fmt.Errorf("unknown search field %q", f)
		}
		columns = append(columns, col)
	}
	return columns, nil
}
