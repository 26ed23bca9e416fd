package db

import (
	"context"
	"fmt"

	"github.com/mpetrenko/hh-scout/internal/types"
)

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

const upsertCompanySQL = `
	INSERT INTO companies (company_id, company_name, site_url)
	VALUES ($1, $2, $3)
	ON CONFLICT (company_id) DO UPDATE SET
	    company_name = EXCLUDED.company_name,
	    site_url = EXCLUDED.site_url,
	    updated_at = NOW()`

// UpsertCompany inserts a company or refreshes its name and site URL on
// conflict. Idempotent for a given identity. Companies without an external ID
// cannot be persisted.
func (db *DB) UpsertCompany(ctx context.Context, c types.Company) error {
	return upsertCompany(ctx, db.pool, c)
}

// UpsertCompany performs the company upsert inside the batch transaction.
func (b *Batch) UpsertCompany(ctx context.Context, c types.Company) error {
	return upsertCompany(ctx, b.tx, c)
}

func upsertCompany(ctx context.Context, q querier, c types.Company) error {
	if !c.Resolved() {
		return fmt.Errorf("company %q has no external id", c.Name)
	}
	if _, err := q.Exec(ctx, upsertCompanySQL, c.ID, c.Name, nullIfEmpty(c.SiteURL)); err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", c.ID, err)
	}
	return nil
}

// GetCompany retrieves a company by its external ID. Returns nil when absent.
func (db *DB) GetCompany(ctx context.Context, companyID string) (*types.Company, error) {
	var (
		c       types.Company
		siteURL *string
	)
	err := db.pool.QueryRow(ctx,
		`SELECT company_id, company_name, site_url FROM companies WHERE company_id = $1`,
		companyID,
	).Scan(&c.ID, &c.Name, &siteURL)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if siteURL != nil {
		c.SiteURL = *siteURL
	}
	return &c, nil
}

// CompanyVacancyCount pairs a company with the number of vacancies it owns.
type CompanyVacancyCount struct {
	Company      types.Company `json:"company"`
	VacancyCount int           `json:"vacancy_count"`
}

// CompaniesWithVacancyCounts returns every company, including those with zero
// vacancies, with its vacancy count. Ordered by count descending, then
// company name ascending for a deterministic tie-break.
func (db *DB) CompaniesWithVacancyCounts(ctx context.Context, limit, offset int) ([]CompanyVacancyCount, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.company_id, c.company_name, COALESCE(c.site_url, ''), COUNT(v.url) AS vacancy_count
		 FROM companies c
		 LEFT JOIN vacancies v ON v.company_id = c.company_id
		 GROUP BY c.company_id, c.company_name, c.site_url
		 ORDER BY vacancy_count DESC, c.company_name ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies with counts: %w", err)
	}
	defer rows.Close()

	var results []CompanyVacancyCount
	for rows.Next() {
		var r CompanyVacancyCount
		if err := rows.Scan(&r.Company.ID, &r.Company.Name, &r.Company.SiteURL, &r.VacancyCount); err != nil {
			return nil, fmt.Errorf("failed to scan company count: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
