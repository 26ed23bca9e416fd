package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mpetrenko/hh-scout/internal/types"
)

// -----------------------------------------------------------------------------
// Vacancy Methods
// -----------------------------------------------------------------------------

// avgSalaryExpr computes a vacancy's average salary in SQL: the mean of both
// bounds when both are stated, the single stated bound otherwise, NULL when
// neither is. Queries alias the vacancies table as v.
const avgSalaryExpr = `CASE
	WHEN v.salary_from IS NOT NULL AND v.salary_to IS NOT NULL
	    THEN (v.salary_from + v.salary_to) / 2.0
	ELSE COALESCE(v.salary_from, v.salary_to)
END`

// vacancyColumns is the standard projection, with the company name taken from
// the companies table when the vacancy is linked, falling back to the
// denormalized copy.
const vacancyColumns = `v.url, v.company_id, v.vacancy_name, v.requirements,
	v.salary_from, v.salary_to, v.experience, v.remote, v.currency,
	COALESCE(c.company_name, v.company_name, '')`

const upsertVacancySQL = `
	INSERT INTO vacancies (url, company_id, vacancy_name, requirements,
	                       salary_from, salary_to, experience, remote,
	                       currency, company_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (url) DO UPDATE SET
	    company_id = COALESCE(EXCLUDED.company_id, vacancies.company_id),
	    vacancy_name = EXCLUDED.vacancy_name,
	    requirements = EXCLUDED.requirements,
	    salary_from = EXCLUDED.salary_from,
	    salary_to = EXCLUDED.salary_to,
	    experience = EXCLUDED.experience,
	    remote = EXCLUDED.remote,
	    currency = EXCLUDED.currency,
	    company_name = EXCLUDED.company_name,
	    last_updated = NOW()
	WHERE (vacancies.company_id, vacancies.vacancy_name, vacancies.requirements,
	       vacancies.salary_from, vacancies.salary_to, vacancies.experience,
	       vacancies.remote, vacancies.currency, vacancies.company_name)
	      IS DISTINCT FROM
	      (COALESCE(EXCLUDED.company_id, vacancies.company_id), EXCLUDED.vacancy_name,
	       EXCLUDED.requirements, EXCLUDED.salary_from, EXCLUDED.salary_to,
	       EXCLUDED.experience, EXCLUDED.remote, EXCLUDED.currency,
	       EXCLUDED.company_name)`

// UpsertVacancy inserts a vacancy or, on URL conflict, refreshes its mutable
// fields and last_updated. The owning company row must already exist when the
// vacancy carries a company_id. saved is false when the stored row was already
// identical.
func (db *DB) UpsertVacancy(ctx context.Context, v types.Vacancy) (saved bool, err error) {
	return upsertVacancy(ctx, db.pool, v)
}

// UpsertVacancy performs the vacancy upsert inside the batch transaction.
func (b *Batch) UpsertVacancy(ctx context.Context, v types.Vacancy) (saved bool, err error) {
	return upsertVacancy(ctx, b.tx, v)
}

func upsertVacancy(ctx context.Context, q querier, v types.Vacancy) (bool, error) {
	if v.URL == "" {
		return false, fmt.Errorf("vacancy %q has no URL", v.Title)
	}

	tag, err := q.Exec(ctx, upsertVacancySQL,
		v.URL, nullIfEmpty(v.CompanyID), v.Title, v.Description,
		v.SalaryFrom, v.SalaryTo, v.Experience, v.Remote,
		v.Currency, v.CompanyName,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert vacancy %s: %w", v.URL, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetVacancy retrieves a vacancy by its URL. Returns nil when absent.
func (db *DB) GetVacancy(ctx context.Context, url string) (*types.Vacancy, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies v
		 LEFT JOIN companies c ON c.company_id = v.company_id
		 WHERE v.url = $1`,
		url,
	)
	v, err := scanVacancy(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}
	return &v, nil
}

// AllVacancies returns vacancies joined with their company name, ordered by
// company name then vacancy title. This ordering is stable and deliberately
// not salary-based; salary ranking has its own queries.
func (db *DB) AllVacancies(ctx context.Context, limit, offset int) ([]types.Vacancy, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies v
		 LEFT JOIN companies c ON c.company_id = v.company_id
		 ORDER BY COALESCE(c.company_name, v.company_name, '') ASC, v.vacancy_name ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

// VacanciesByCompany returns the vacancies whose company name matches the
// given name, case-insensitively.
func (db *DB) VacanciesByCompany(ctx context.Context, companyName string) ([]types.Vacancy, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies v
		 LEFT JOIN companies c ON c.company_id = v.company_id
		 WHERE COALESCE(c.company_name, v.company_name, '') ILIKE $1
		 ORDER BY v.vacancy_name ASC`,
		companyName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies by company: %w", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

// AverageSalary returns the mean average salary over vacancies with at least
// one stated bound, rounded to two decimals. ok is false when no vacancy has
// salary data.
func (db *DB) AverageSalary(ctx context.Context) (avg float64, ok bool, err error) {
	var result *float64
	err = db.pool.QueryRow(ctx,
		`SELECT ROUND(AVG(`+avgSalaryExpr+`)::numeric, 2)
		 FROM vacancies v
		 WHERE v.salary_from IS NOT NULL OR v.salary_to IS NOT NULL`,
	).Scan(&result)
	if err != nil {
		return 0, false, fmt.Errorf("failed to compute average salary: %w", err)
	}
	if result == nil {
		return 0, false, nil
	}
	return *result, true, nil
}

// AboveAverageSalaryVacancies returns vacancies whose average salary strictly
// exceeds the overall average, ordered by average salary descending then
// company name ascending.
func (db *DB) AboveAverageSalaryVacancies(ctx context.Context, limit, offset int) ([]types.Vacancy, error) {
	avg, ok, err := db.AverageSalary(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies v
		 LEFT JOIN companies c ON c.company_id = v.company_id
		 WHERE `+avgSalaryExpr+` > $1
		 ORDER BY `+avgSalaryExpr+` DESC,
		          COALESCE(c.company_name, v.company_name, '') ASC,
		          v.vacancy_name ASC
		 LIMIT $2 OFFSET $3`,
		avg, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list above-average vacancies: %w", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

// -----------------------------------------------------------------------------
// Scan helpers
// -----------------------------------------------------------------------------

func scanVacancy(row pgx.Row) (types.Vacancy, error) {
	var (
		v            types.Vacancy
		companyID    *string
		requirements *string
		experience   *string
		currency     *string
	)
	err := row.Scan(&v.URL, &companyID, &v.Title, &requirements,
		&v.SalaryFrom, &v.SalaryTo, &experience, &v.Remote, &currency,
		&v.CompanyName)
	if err != nil {
		return types.Vacancy{}, err
	}
	if companyID != nil {
		v.CompanyID = *companyID
	}
	if requirements != nil {
		v.Description = *requirements
	}
	if experience != nil {
		v.Experience = *experience
	}
	if currency != nil {
		v.Currency = *currency
	}
	return v, nil
}

func collectVacancies(rows pgx.Rows) ([]types.Vacancy, error) {
	var vacancies []types.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
