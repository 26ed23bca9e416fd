package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/hh-scout/internal/db"
	"github.com/mpetrenko/hh-scout/internal/types"
)

// fakeReader records the arguments of the last call so tests can assert
// criteria translation without a database.
type fakeReader struct {
	lastLimit    int
	lastOffset   int
	lastCompany  string
	lastCriteria db.SearchCriteria

	vacancies []types.Vacancy
	companies []db.CompanyVacancyCount
	total     int
	avg       float64
	avgOK     bool
}

func (r *fakeReader) CompaniesWithVacancyCounts(_ context.Context, limit, offset int) ([]db.CompanyVacancyCount, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.companies, nil
}

func (r *fakeReader) AllVacancies(_ context.Context, limit, offset int) ([]types.Vacancy, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.vacancies, nil
}

func (r *fakeReader) VacanciesByCompany(_ context.Context, companyName string) ([]types.Vacancy, error) {
	r.lastCompany = companyName
	return r.vacancies, nil
}

func (r *fakeReader) AverageSalary(_ context.Context) (float64, bool, error) {
	return r.avg, r.avgOK, nil
}

func (r *fakeReader) AboveAverageSalaryVacancies(_ context.Context, limit, offset int) ([]types.Vacancy, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.vacancies, nil
}

func (r *fakeReader) SearchVacancies(_ context.Context, criteria db.SearchCriteria) ([]types.Vacancy, error) {
	r.lastCriteria = criteria
	return r.vacancies, nil
}

func (r *fakeReader) TotalCount(_ context.Context, _ string) (int, error) {
	return r.total, nil
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{"first page", 1, 10, 10, 0},
		{"second page", 2, 10, 10, 10},
		{"third page custom size", 3, 25, 25, 50},
		{"page zero means first", 0, 10, 10, 0},
		{"per page zero gets default", 1, 0, DefaultPerPage, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageBounds(tt.page, tt.perPage)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestVacancies_Pagination(t *testing.T) {
	reader := &fakeReader{total: 57}
	svc := NewService(reader)

	_, total, err := svc.Vacancies(context.Background(), 3, 20)
	require.NoError(t, err)

	assert.Equal(t, 57, total)
	assert.Equal(t, 20, reader.lastLimit)
	assert.Equal(t, 40, reader.lastOffset)
}

func TestByCompany_RequiresName(t *testing.T) {
	svc := NewService(&fakeReader{})

	_, err := svc.ByCompany(context.Background(), "   ")
	require.Error(t, err)

	_, err = svc.ByCompany(context.Background(), " Acme ")
	require.NoError(t, err)
}

func TestByCompany_TrimsName(t *testing.T) {
	reader := &fakeReader{}
	svc := NewService(reader)

	_, err := svc.ByCompany(context.Background(), "  Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", reader.lastCompany)
}

func TestSearch_TranslatesFilter(t *testing.T) {
	reader := &fakeReader{}
	svc := NewService(reader)
	min, max := 1000, 5000

	_, err := svc.Search(context.Background(), Filter{
		Keyword:   "go postgres",
		Fields:    []string{"title", "description"},
		Company:   "acme",
		MinSalary: &min,
		MaxSalary: &max,
		Operator:  "or",
		Page:      2,
		PerPage:   15,
	})
	require.NoError(t, err)

	c := reader.lastCriteria
	assert.Equal(t, "go postgres", c.Keyword)
	assert.Equal(t, []string{"title", "description"}, c.SearchFields)
	assert.Equal(t, "acme", c.CompanyName)
	assert.Equal(t, db.OperatorOr, c.Operator, "operator is upper-cased for the gateway")
	assert.Equal(t, 15, c.Limit)
	assert.Equal(t, 15, c.Offset)
}

func TestSearch_RejectsBadFilters(t *testing.T) {
	svc := NewService(&fakeReader{})
	negative := -1
	min, max := 5000, 1000

	tests := []struct {
		name   string
		filter Filter
	}{
		{"unknown field", Filter{Fields: []string{"location"}}},
		{"unknown operator", Filter{Keyword: "go", Operator: "XOR"}},
		{"negative salary", Filter{MinSalary: &negative}},
		{"min above max", Filter{MinSalary: &min, MaxSalary: &max}},
		{"oversized page", Filter{PerPage: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.filter)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid search filter")
		})
	}
}

func TestSearch_EmptyFilterIsValid(t *testing.T) {
	reader := &fakeReader{}
	svc := NewService(reader)

	_, err := svc.Search(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, reader.lastCriteria.Limit)
	assert.Equal(t, 0, reader.lastCriteria.Offset)
}

func TestSearch_PreservesStoreOrder(t *testing.T) {
	// Ordering belongs to the storage layer; the service must not re-sort.
	low, high := 100, 9000
	reader := &fakeReader{vacancies: []types.Vacancy{
		types.NewVacancy(types.VacancyInput{Title: "Low", URL: "u1", SalaryFrom: &low}),
		types.NewVacancy(types.VacancyInput{Title: "High", URL: "u2", SalaryFrom: &high}),
	}}
	svc := NewService(reader)

	got, err := svc.Search(context.Background(), Filter{Keyword: "dev"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Low", got[0].Title)
	assert.Equal(t, "High", got[1].Title)
}

func TestAverageSalary_PassThrough(t *testing.T) {
	svc := NewService(&fakeReader{avg: 1666.67, avgOK: true})

	avg, ok, err := svc.AverageSalary(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1666.67, avg)
}

func TestTopSalary_Pagination(t *testing.T) {
	reader := &fakeReader{}
	svc := NewService(reader)

	_, err := svc.TopSalary(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, reader.lastLimit)
	assert.Equal(t, 0, reader.lastOffset)
}
