package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCompany_Normalizes(t *testing.T) {
	c := NewCompany(" 123 ", "  Acme  ", " https://acme.example ")
	assert.Equal(t, "123", c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "https://acme.example", c.SiteURL)

	blank := NewCompany("", "   ", "")
	assert.Equal(t, DefaultCompanyName, blank.Name)
	assert.False(t, blank.Resolved())
}

func TestCompany_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Company
		expected bool
	}{
		{"same id", Company{ID: "1"}, Company{ID: "1", Name: "other"}, true},
		{"different ids", Company{ID: "1"}, Company{ID: "2"}, false},
		{"one unresolved", Company{ID: "1"}, Company{}, false},
		{"both unresolved", Company{Name: "a"}, Company{Name: "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}
