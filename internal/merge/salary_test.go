package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalAmount(t *testing.T) {
	tests := []struct {
		name   string
		salary string
		want   float64
		ok     bool
	}{
		{"empty", "", 0, false},
		{"undisclosed", "Not Disclosed", 0, false},
		{"negotiable", "Negotiable", 0, false},
		{"lakh range", "5-10 Lacs PA", 7.5e5, true},
		{"lpa", "12 LPA", 12e5, true},
		{"crore", "1.2 Crore", 1.2e7, true},
		{"thousands suffix", "Tk. 30k", 30000, true},
		{"plain range with commas", "25,000 - 35,000", 30000, true},
		{"single plain amount", "50000", 50000, true},
		{"junk small number", "3", 0, false},
		{"experience years noise", "2 - 5", 0, false},
		{"no number", "Attractive package", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLocalAmount(tt.salary)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestSalaryUSDAnnual(t *testing.T) {
	tests := []struct {
		name    string
		salary  string
		country string
		source  string
		want    float64
		ok      bool
	}{
		// Naukri quotes annual figures, no x12.
		{"naukri lakhs", "5-10 Lacs PA", "India", "Naukri", 9000, true},
		// BDJobs quotes monthly taka.
		{"bdjobs monthly", "Tk. 30000 - 50000 (Monthly)", "Bangladesh", "BDJobs", 4080, true},
		// Rozee quotes monthly rupees.
		{"rozee monthly", "50000 - 70000", "Pakistan", "Rozee", 2592, true},
		// JobStreet SG quotes monthly SGD.
		{"jobstreet sg", "$5,000 - $7,000 per month", "Singapore", "JobStreet", 53280, true},
		{"unknown country", "50000", "Atlantis", "BDJobs", 0, false},
		{"undisclosed", "Not Disclosed", "India", "Naukri", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SalaryUSDAnnual(tt.salary, tt.country, tt.source)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.01)
			}
		})
	}
}
