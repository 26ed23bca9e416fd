// Package ingest orchestrates one ingestion batch: fetch vacancies and
// companies from the source client, deduplicate, and persist everything inside
// a single transaction.
package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mpetrenko/hh-scout/internal/types"
)

// Fetcher retrieves normalized vacancies and companies from the source API.
// *hh.Client satisfies it.
type Fetcher interface {
	SearchVacancies(ctx context.Context, keyword string, perPage, maxPages int) []types.Vacancy
	SearchVacanciesWithCompanies(ctx context.Context, keyword string, perPage, maxPages int) ([]types.Vacancy, []types.Company)
}

// Batch is a transactional write handle. *db.Batch satisfies it.
type Batch interface {
	UpsertCompany(ctx context.Context, c types.Company) error
	UpsertVacancy(ctx context.Context, v types.Vacancy) (saved bool, err error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context)
}

// Store opens batches and records run audits.
type Store interface {
	BeginBatch(ctx context.Context) (Batch, error)
	CreateRun(ctx context.Context, keyword string) (uuid.UUID, error)
	FinishRun(ctx context.Context, runID uuid.UUID, status string, found, processed, saved int) error
}

// Target is one search unit: a keyword or company name, optionally with a
// known external company ID.
type Target struct {
	Keyword   string
	CompanyID string
}

// Stats reports one batch's outcome. Processed counts every upsert attempt;
// Saved counts only the upserts that actually changed a row, so re-ingesting
// unchanged postings reports Processed > Saved.
type Stats struct {
	Found     int
	Processed int
	Saved     int
	Companies int
}

// Service drives one ingestion batch at a time. Batches are not coordinated
// with each other; concurrent runs rely on the store's upsert semantics.
type Service struct {
	fetcher  Fetcher
	store    Store
	perPage  int
	maxPages int
}

// NewService constructs a Service. perPage and maxPages bound each target's
// fetch; non-positive values fall back to the fetcher's defaults.
func NewService(fetcher Fetcher, store Store, perPage, maxPages int) *Service {
	return &Service{fetcher: fetcher, store: store, perPage: perPage, maxPages: maxPages}
}

// Run ingests all targets as one transactional batch. Every discovered
// company is upserted before any vacancy that references it; on any failure
// the whole batch rolls back and the returned stats carry zero counts.
func (s *Service) Run(ctx context.Context, targets []Target) (Stats, error) {
	var stats Stats
	if len(targets) == 0 {
		return stats, fmt.Errorf("no ingest targets given")
	}

	runID, err := s.store.CreateRun(ctx, describeTargets(targets))
	if err != nil {
		// The audit row is bookkeeping; its absence must not block ingestion.
		log.Printf("[ingest] failed to record run start: %v", err)
	}

	vacancies, companies := s.collect(ctx, targets)
	stats.Found = len(vacancies)
	if stats.Found == 0 {
		s.finishRun(ctx, runID, "completed", stats)
		return stats, nil
	}

	batch, err := s.store.BeginBatch(ctx)
	if err != nil {
		s.finishRun(ctx, runID, "failed", Stats{Found: stats.Found})
		return Stats{}, err
	}
	defer batch.Rollback(ctx)

	// Companies first: a vacancy may not land before its owner.
	for _, c := range companies {
		if err := batch.UpsertCompany(ctx, c); err != nil {
			s.finishRun(ctx, runID, "failed", Stats{Found: stats.Found})
			return Stats{}, fmt.Errorf("batch aborted: %w", err)
		}
	}
	stats.Companies = len(companies)

	for _, v := range vacancies {
		saved, err := batch.UpsertVacancy(ctx, v)
		if err != nil {
			s.finishRun(ctx, runID, "failed", Stats{Found: stats.Found})
			return Stats{}, fmt.Errorf("batch aborted: %w", err)
		}
		stats.Processed++
		if saved {
			stats.Saved++
		}
	}

	if err := batch.Commit(ctx); err != nil {
		s.finishRun(ctx, runID, "failed", Stats{Found: stats.Found})
		return Stats{}, err
	}

	s.finishRun(ctx, runID, "completed", stats)
	return stats, nil
}

// collect fetches every target and merges the results, keeping the first-seen
// company per external ID. Companies without an ID cannot be persisted and
// are dropped with a log line; their vacancies keep the denormalized name.
func (s *Service) collect(ctx context.Context, targets []Target) ([]types.Vacancy, []types.Company) {
	var (
		vacancies []types.Vacancy
		companies []types.Company
		seenIDs   = make(map[string]bool)
		seenURLs  = make(map[string]bool)
	)

	addCompany := func(c types.Company) {
		if !c.Resolved() {
			log.Printf("[ingest] skipping company %q: no external id", c.Name)
			return
		}
		if !seenIDs[c.ID] {
			seenIDs[c.ID] = true
			companies = append(companies, c)
		}
	}

	for _, t := range targets {
		var (
			fetched    []types.Vacancy
			discovered []types.Company
		)
		if t.CompanyID != "" {
			fetched, discovered = s.fetcher.SearchVacanciesWithCompanies(ctx, t.Keyword, s.perPage, s.maxPages)
		} else {
			fetched = s.fetcher.SearchVacancies(ctx, t.Keyword, s.perPage, s.maxPages)
		}

		for _, c := range discovered {
			addCompany(c)
		}

		// Referential ordering still holds for vacancy-only targets: derive
		// the owning company from the denormalized fields.
		for _, v := range fetched {
			if v.CompanyID != "" && !seenIDs[v.CompanyID] {
				addCompany(types.NewCompany(v.CompanyID, v.CompanyName, ""))
			}
			// Overlapping targets surface the same posting more than once.
			if seenURLs[v.URL] {
				continue
			}
			seenURLs[v.URL] = true
			vacancies = append(vacancies, v)
		}
	}

	return vacancies, companies
}

func (s *Service) finishRun(ctx context.Context, runID uuid.UUID, status string, stats Stats) {
	if runID == uuid.Nil {
		return
	}
	if err := s.store.FinishRun(ctx, runID, status, stats.Found, stats.Processed, stats.Saved); err != nil {
		log.Printf("[ingest] failed to record run outcome: %v", err)
	}
}

func describeTargets(targets []Target) string {
	keywords := make([]string, 0, len(targets))
	for _, t := range targets {
		keywords = append(keywords, t.Keyword)
	}
	return strings.Join(keywords, ", ")
}
