// Package hh provides a client for the HH.ru vacancy search API. It fetches
// paged result sets and maps raw records into canonical Vacancy and Company
// entities.
package hh

import (
	"context"
	"log"

	"github.com/mpetrenko/hh-scout/internal/fetch"
	"github.com/mpetrenko/hh-scout/internal/types"
)

// DefaultBaseURL is the HH.ru vacancy search endpoint.
const DefaultBaseURL = "https://api.hh.ru/vacancies"

// Default paging bounds, matching the API's own defaults.
const (
	DefaultPerPage  = 20
	DefaultMaxPages = 5
)

// Client fetches vacancy search results from the HH.ru API.
type Client struct {
	baseURL string
	opts    *fetch.Options
}

// NewClient constructs a Client. An empty baseURL selects the production
// endpoint; tests point it at a local server.
func NewClient(baseURL string, opts *fetch.Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Client{baseURL: baseURL, opts: opts}
}

// SearchVacancies retrieves up to maxPages pages of results for a keyword and
// returns the normalized vacancies. A failed page is logged and skipped;
// partial results are returned rather than an error. An empty keyword yields
// no results.
func (c *Client) SearchVacancies(ctx context.Context, keyword string, perPage, maxPages int) []types.Vacancy {
	vacancies, _ := c.search(ctx, keyword, perPage, maxPages, false)
	return vacancies
}

// SearchVacanciesWithCompanies retrieves vacancies along with the employers
// discovered in the same result pages. Companies are deduplicated by external
// ID: only the first occurrence across all pages is kept. Employers without
// an ID are never deduplicated against each other.
func (c *Client) SearchVacanciesWithCompanies(ctx context.Context, keyword string, perPage, maxPages int) ([]types.Vacancy, []types.Company) {
	return c.search(ctx, keyword, perPage, maxPages, true)
}

func (c *Client) search(ctx context.Context, keyword string, perPage, maxPages int, withCompanies bool) ([]types.Vacancy, []types.Company) {
	if keyword == "" {
		log.Println("[hh] empty search keyword, nothing to fetch")
		return nil, nil
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var (
		vacancies []types.Vacancy
		companies []types.Company
		seenIDs   = make(map[string]bool)
	)

	// The page bound tightens once a page reports the real total.
	bound := maxPages
	for page := 0; page < bound; page++ {
		if ctx.Err() != nil {
			log.Printf("[hh] fetch cancelled after page %d: %v", page, ctx.Err())
			break
		}

		resp, err := c.fetchPage(ctx, keyword, page, perPage)
		if err != nil {
			log.Printf("[hh] page %d for %q failed, skipping: %v", page, keyword, err)
			continue
		}
		if resp.Pages > 0 && resp.Pages < bound {
			bound = resp.Pages
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, it := range resp.Items {
			vacancies = append(vacancies, parseVacancy(it))
			if !withCompanies {
				continue
			}
			// An employer without an ID equals no other company, so each
			// occurrence passes through; only resolved IDs dedupe.
			company := parseCompany(it)
			if company.ID == "" {
				companies = append(companies, company)
				continue
			}
			if !seenIDs[company.ID] {
				seenIDs[company.ID] = true
				companies = append(companies, company)
			}
		}
	}

	return vacancies, companies
}
