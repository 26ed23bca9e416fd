package hh

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mpetrenko/hh-scout/internal/fetch"
	"github.com/mpetrenko/hh-scout/internal/types"
)

// searchResponse mirrors the top-level HH.ru search response.
type searchResponse struct {
	Items []searchItem `json:"items"`
	Pages int          `json:"pages"`
	Found int          `json:"found"`
}

// searchItem mirrors a single vacancy record. Every field may be absent;
// normalization happens in the types package, never here.
type searchItem struct {
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
	Snippet      struct {
		Responsibility string `json:"responsibility"`
		Requirement    string `json:"requirement"`
	} `json:"snippet"`
	Salary *struct {
		From     *int   `json:"from"`
		To       *int   `json:"to"`
		Currency string `json:"currency"`
	} `json:"salary"`
	Experience struct {
		Name string `json:"name"`
	} `json:"experience"`
	Schedule struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"schedule"`
	Employer struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		SiteURL string `json:"site_url"`
	} `json:"employer"`
}

func (c *Client) fetchPage(ctx context.Context, keyword string, page, perPage int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("text", keyword)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var resp searchResponse
	if _, err := fetch.JSON(ctx, c.baseURL, params, &resp, c.opts); err != nil {
		return nil, err
	}
	return &resp, nil
}

func parseVacancy(it searchItem) types.Vacancy {
	description := strings.TrimSpace(stripHighlights(it.Snippet.Responsibility) + " " + stripHighlights(it.Snippet.Requirement))

	in := types.VacancyInput{
		Title:       it.Name,
		URL:         it.AlternateURL,
		Description: description,
		Experience:  it.Experience.Name,
		CompanyID:   it.Employer.ID,
		CompanyName: it.Employer.Name,
	}

	// Salary presence is decided here, once. Downstream code only ever sees
	// tagged optional bounds.
	if it.Salary != nil {
		in.SalaryFrom = it.Salary.From
		in.SalaryTo = it.Salary.To
		in.Currency = it.Salary.Currency
	}

	// The schedule id is the stable marker; the display name is localized.
	in.ScheduleName = it.Schedule.ID
	if in.ScheduleName == "" {
		in.ScheduleName = it.Schedule.Name
	}

	return types.NewVacancy(in)
}

func parseCompany(it searchItem) types.Company {
	return types.NewCompany(it.Employer.ID, it.Employer.Name, it.Employer.SiteURL)
}

// stripHighlights removes the <highlighttext> markup HH.ru embeds in snippet
// fields, leaving plain text.
func stripHighlights(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
