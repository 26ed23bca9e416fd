package types

import "strings"

// Company is a canonical employer record. The external ID is the identity:
// a company without an ID is unresolved and equal to nothing, itself included.
type Company struct {
	ID      string `json:"company_id,omitempty"`
	Name    string `json:"company_name"`
	SiteURL string `json:"site_url,omitempty"`
}

// NewCompany builds a Company, normalizing a blank name to a placeholder.
// The ID may be empty until resolved via a lookup fetch.
func NewCompany(id, name, siteURL string) Company {
	return Company{
		ID:      strings.TrimSpace(id),
		Name:    normalizeString(name, DefaultCompanyName),
		SiteURL: strings.TrimSpace(siteURL),
	}
}

// Resolved reports whether the company carries an external identity.
func (c Company) Resolved() bool {
	return c.ID != ""
}

// Equal reports identity equality: both IDs present and matching.
func (c Company) Equal(other Company) bool {
	return c.ID != "" && other.ID != "" && c.ID == other.ID
}
