// Package types defines the canonical Vacancy and Company entities shared by
// the source client, ingestion and storage layers.
package types

import "strings"

// Placeholder values used when a source field is blank or malformed.
const (
	DefaultTitle       = "Untitled"
	DefaultDescription = "No description"
	DefaultExperience  = "not specified"
	DefaultCompanyName = "No company"
	DefaultCurrency    = "RUR"
)

// remoteTitleMarkers are substrings that mark a posting as remote work when
// they appear in the title. Checked case-insensitively. This is a heuristic
// and can misfire on titles that merely mention remote work.
var remoteTitleMarkers = []string{"remote", "удален"}

// Vacancy is a normalized job posting. The URL is the natural key: two
// vacancies with the same URL are the same posting.
type Vacancy struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	SalaryFrom  *int   `json:"salary_from,omitempty"`
	SalaryTo    *int   `json:"salary_to,omitempty"`
	Experience  string `json:"experience"`
	Remote      bool   `json:"remote"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name"`
	Currency    string `json:"currency"`
}

// VacancyInput carries raw field values from one source record. Salary bounds
// are already tagged optionals; the source client decides presence once at the
// API boundary and nothing downstream re-interprets them.
type VacancyInput struct {
	Title        string
	URL          string
	Description  string
	Experience   string
	SalaryFrom   *int
	SalaryTo     *int
	ScheduleName string
	CompanyID    string
	CompanyName  string
	Currency     string
}

// NewVacancy builds a Vacancy from raw input. It never fails: blank or
// malformed fields normalize to placeholders, negative salary bounds normalize
// to absent.
func NewVacancy(in VacancyInput) Vacancy {
	return Vacancy{
		Title:       normalizeString(in.Title, DefaultTitle),
		URL:         strings.TrimSpace(in.URL),
		Description: normalizeString(in.Description, DefaultDescription),
		SalaryFrom:  normalizeSalaryBound(in.SalaryFrom),
		SalaryTo:    normalizeSalaryBound(in.SalaryTo),
		Experience:  normalizeString(in.Experience, DefaultExperience),
		Remote:      isRemote(in.ScheduleName, in.Title),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		CompanyName: normalizeString(in.CompanyName, DefaultCompanyName),
		Currency:    normalizeString(in.Currency, DefaultCurrency),
	}
}

// AverageSalary returns the mean of the two bounds when both are present, the
// single present bound otherwise. ok is false when neither bound is stated.
func (v Vacancy) AverageSalary() (avg float64, ok bool) {
	switch {
	case v.SalaryFrom != nil && v.SalaryTo != nil:
		return float64(*v.SalaryFrom+*v.SalaryTo) / 2, true
	case v.SalaryFrom != nil:
		return float64(*v.SalaryFrom), true
	case v.SalaryTo != nil:
		return float64(*v.SalaryTo), true
	default:
		return 0, false
	}
}

// Equal reports whether two vacancies are the same posting, regardless of
// field drift.
func (v Vacancy) Equal(other Vacancy) bool {
	return v.URL != "" && v.URL == other.URL
}

// Less orders vacancies by average salary ascending. Vacancies without salary
// data sort first.
func (v Vacancy) Less(other Vacancy) bool {
	a, _ := v.AverageSalary()
	b, _ := other.AverageSalary()
	return a < b
}

func isRemote(scheduleName, title string) bool {
	if strings.EqualFold(strings.TrimSpace(scheduleName), "remote") {
		return true
	}
	lower := strings.ToLower(title)
	for _, marker := range remoteTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func normalizeString(v, fallback string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

// normalizeSalaryBound maps negative bounds to absent. Zero is kept as a
// stated bound.
func normalizeSalaryBound(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	bound := *v
	return &bound
}
