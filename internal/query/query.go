// Package query translates caller filter intent into persistence reads and
// consistent pagination. Ordering always comes from the storage layer; this
// package never re-sorts.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/types"
)

// DefaultPerPage bounds result pages when the caller does not choose a size.
const DefaultPerPage = 10

// Reader is the read side of the persistence gateway. *db.DB satisfies it.
type Reader interface {
	CompaniesWithVacancyCounts(ctx context.Context, limit, offset int) ([]db.CompanyVacancyCount, error)
	AllVacancies(ctx context.Context, limit, offset int) ([]types.Vacancy, error)
	VacanciesByCompany(ctx context.Context, companyName string) ([]types.Vacancy, error)
	AverageSalary(ctx context.Context) (float64, bool, error)
	AboveAverageSalaryVacancies(ctx context.Context, limit, offset int) ([]types.Vacancy, error)
	SearchVacancies(ctx context.Context, criteria db.SearchCriteria) ([]types.Vacancy, error)
	TotalCount(ctx context.Context, entity string) (int, error)
}

// Filter is the caller-facing search criteria.
type Filter struct {
	Keyword    string   `validate:"omitempty"`
	Fields     []string `validate:"omitempty,dive,oneof=title description experience"`
	Company    string   `validate:"omitempty"`
	MinSalary  *int     `validate:"omitempty,gte=0"`
	MaxSalary  *int     `validate:"omitempty,gte=0"`
	ExactMatch bool
	Operator   string `validate:"omitempty,oneof=AND OR and or And Or"`
	Page       int    `validate:"gte=0"`
	PerPage    int    `validate:"gte=0,lte=100"`
}

// Service is the query facade over the persistence gateway.
type Service struct {
	store    Reader
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(store Reader) *Service {
	return &Service{store: store, validate: validator.New()}
}

// Companies returns one page of companies with their vacancy counts, plus the
// total company count for pagination math.
func (s *Service) Companies(ctx context.Context, page, perPage int) ([]db.CompanyVacancyCount, int, error) {
	limit, offset := pageBounds(page, perPage)
	items, err := s.store.CompaniesWithVacancyCounts(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.TotalCount(ctx, "companies")
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Vacancies returns one page of all vacancies in company-then-title order,
// plus the total vacancy count.
func (s *Service) Vacancies(ctx context.Context, page, perPage int) ([]types.Vacancy, int, error) {
	limit, offset := pageBounds(page, perPage)
	items, err := s.store.AllVacancies(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.TotalCount(ctx, "vacancies")
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ByCompany returns the vacancies of one company, matched by name.
func (s *Service) ByCompany(ctx context.Context, companyName string) ([]types.Vacancy, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}
	return s.store.VacanciesByCompany(ctx, companyName)
}

// AverageSalary returns the overall average salary. ok is false when no stored
// vacancy states a salary.
func (s *Service) AverageSalary(ctx context.Context) (float64, bool, error) {
	return s.store.AverageSalary(ctx)
}

// TopSalary returns one page of vacancies paying strictly above the overall
// average, best paid first.
func (s *Service) TopSalary(ctx context.Context, page, perPage int) ([]types.Vacancy, error) {
	limit, offset := pageBounds(page, perPage)
	return s.store.AboveAverageSalaryVacancies(ctx, limit, offset)
}

// Search validates the filter and runs a keyword search against the gateway.
func (s *Service) Search(ctx context.Context, f Filter) ([]types.Vacancy, error) {
	if err := s.validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid search filter: %w", err)
	}
	if f.MinSalary != nil && f.MaxSalary != nil && *f.MinSalary > *f.MaxSalary {
		return nil, fmt.Errorf("invalid search filter: min salary above max salary")
	}

	limit, offset := pageBounds(f.Page, f.PerPage)
	return s.store.SearchVacancies(ctx, db.SearchCriteria{
		Keyword:      f.Keyword,
		SearchFields: f.Fields,
		CompanyName:  f.Company,
		MinSalary:    f.MinSalary,
		MaxSalary:    f.MaxSalary,
		ExactMatch:   f.ExactMatch,
		Operator:     strings.ToUpper(f.Operator),
		Limit:        limit,
		Offset:       offset,
	})
}

// pageBounds converts 1-based page numbers into limit/offset. Page 0 and 1
// both mean the first page.
func pageBounds(page, perPage int) (limit, offset int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	return perPage, (page - 1) * perPage
}
