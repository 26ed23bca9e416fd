package hh

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/hh-scout/internal/types"
)

func decodeItem(t *testing.T, raw string) searchItem {
	t.Helper()
	var it searchItem
	require.NoError(t, json.Unmarshal([]byte(raw), &it))
	return it
}

func TestParseVacancy_FullItem(t *testing.T) {
	it := decodeItem(t, `{
		"name": "Go Developer",
		"alternate_url": "https://hh.ru/vacancy/42",
		"snippet": {
			"responsibility": "Design <highlighttext>Go</highlighttext> services",
			"requirement": "Know <highlighttext>PostgreSQL</highlighttext>"
		},
		"salary": {"from": 90000, "to": 150000, "currency": "RUR"},
		"experience": {"name": "3-6 years"},
		"schedule": {"id": "fullDay", "name": "Full day"},
		"employer": {"id": "77", "name": "Acme", "site_url": "https://acme.example"}
	}`)

	v := parseVacancy(it)

	assert.Equal(t, "Go Developer", v.Title)
	assert.Equal(t, "https://hh.ru/vacancy/42", v.URL)
	assert.Equal(t, "Design Go services Know PostgreSQL", v.Description)
	require.NotNil(t, v.SalaryFrom)
	require.NotNil(t, v.SalaryTo)
	assert.Equal(t, 90000, *v.SalaryFrom)
	assert.Equal(t, 150000, *v.SalaryTo)
	assert.Equal(t, "RUR", v.Currency)
	assert.Equal(t, "3-6 years", v.Experience)
	assert.False(t, v.Remote)
	assert.Equal(t, "77", v.CompanyID)
	assert.Equal(t, "Acme", v.CompanyName)
}

func TestParseVacancy_NoSalary(t *testing.T) {
	it := decodeItem(t, `{
		"name": "Intern",
		"alternate_url": "https://hh.ru/vacancy/1",
		"salary": null
	}`)

	v := parseVacancy(it)

	assert.Nil(t, v.SalaryFrom)
	assert.Nil(t, v.SalaryTo)
	_, ok := v.AverageSalary()
	assert.False(t, ok)
	assert.Equal(t, types.DefaultCurrency, v.Currency)
}

func TestParseVacancy_OpenEndedSalary(t *testing.T) {
	it := decodeItem(t, `{
		"name": "Senior",
		"alternate_url": "https://hh.ru/vacancy/2",
		"salary": {"from": 200000, "to": null, "currency": "RUR"}
	}`)

	v := parseVacancy(it)

	require.NotNil(t, v.SalaryFrom)
	assert.Equal(t, 200000, *v.SalaryFrom)
	assert.Nil(t, v.SalaryTo)
}

func TestParseVacancy_MissingFieldsGetPlaceholders(t *testing.T) {
	it := decodeItem(t, `{"alternate_url": "https://hh.ru/vacancy/3"}`)

	v := parseVacancy(it)

	assert.Equal(t, types.DefaultTitle, v.Title)
	assert.Equal(t, types.DefaultDescription, v.Description)
	assert.Equal(t, types.DefaultExperience, v.Experience)
	assert.Equal(t, types.DefaultCompanyName, v.CompanyName)
}

func TestParseVacancy_RemoteSchedule(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		remote bool
	}{
		{
			name:   "schedule id marks remote",
			raw:    `{"name": "Dev", "alternate_url": "u", "schedule": {"id": "remote", "name": "Удаленная работа"}}`,
			remote: true,
		},
		{
			name:   "falls back to localized name when id is absent",
			raw:    `{"name": "Dev", "alternate_url": "u", "schedule": {"name": "remote"}}`,
			remote: true,
		},
		{
			name:   "office schedule",
			raw:    `{"name": "Dev", "alternate_url": "u", "schedule": {"id": "fullDay", "name": "Full day"}}`,
			remote: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := parseVacancy(decodeItem(t, tt.raw))
			assert.Equal(t, tt.remote, v.Remote)
		})
	}
}

func TestParseCompany(t *testing.T) {
	it := decodeItem(t, `{"employer": {"id": "9", "name": "Globex", "site_url": "https://globex.example"}}`)

	c := parseCompany(it)

	assert.Equal(t, "9", c.ID)
	assert.Equal(t, "Globex", c.Name)
	assert.Equal(t, "https://globex.example", c.SiteURL)
	assert.True(t, c.Resolved())
}

func TestStripHighlights(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"know <highlighttext>Go</highlighttext> well", "know Go well"},
		{"<highlighttext>Только</highlighttext> опыт", "Только опыт"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripHighlights(tt.in))
	}
}
