package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpetrenko/hh-scout/internal/types"
)

func priced(title, company string, from, to int) types.Vacancy {
	return types.NewVacancy(types.VacancyInput{
		Title:       title,
		URL:         "https://hh.ru/vacancy/1",
		SalaryFrom:  &from,
		SalaryTo:    &to,
		Currency:    "RUR",
		CompanyName: company,
	})
}

func TestPrintVacancy(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	v := priced("Go Developer", "Acme", 90000, 150000)
	p.PrintVacancy(&v)
	output := buf.String()

	assert.Contains(t, output, "VACANCY")
	assert.Contains(t, output, "Go Developer")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "90000 to 150000 RUR")
	assert.Contains(t, output, "https://hh.ru/vacancy/1")
}

func TestPrintVacancy_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVacancy(nil)

	assert.Empty(t, buf.String())
}

func TestPrintVacancyList_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var vacancies []types.Vacancy
	for i := 0; i < 8; i++ {
		vacancies = append(vacancies, priced("Dev", "Acme", 1000, 2000))
	}

	p.PrintVacancyList(vacancies)
	output := buf.String()

	assert.Contains(t, output, "Total vacancies: 8")
	assert.Contains(t, output, "#5")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 3 more vacancies")
}

func TestPrintVacancyList_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVacancyList(nil)

	assert.Empty(t, buf.String())
}

func TestPrintIngestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIngestSummary("golang, backend", 10, 3, 10, 7)
	output := buf.String()

	assert.Contains(t, output, "INGEST SUMMARY")
	assert.Contains(t, output, "golang, backend")
	assert.Contains(t, output, "10 vacancies (3 companies)")
	assert.Contains(t, output, "(3 already up to date)")
}

func TestSalaryLine(t *testing.T) {
	from, to := 1000, 2000
	tests := []struct {
		name string
		v    types.Vacancy
		want string
	}{
		{"both bounds", types.Vacancy{SalaryFrom: &from, SalaryTo: &to, Currency: "RUR"}, "1000 to 2000 RUR"},
		{"lower only", types.Vacancy{SalaryFrom: &from, Currency: "RUR"}, "from 1000 RUR"},
		{"upper only", types.Vacancy{SalaryTo: &to, Currency: "EUR"}, "up to 2000 EUR"},
		{"absent", types.Vacancy{}, "not stated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, salaryLine(tt.v))
		})
	}
}
