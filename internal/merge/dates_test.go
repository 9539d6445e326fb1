package merge

import (
	"testing"
	"time"

	"jobsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{"timestamp", "2025-11-03 14:22:01", "2025-11-03 14:22:01", true},
		{"plain date", "2025-11-03", "2025-11-03", true},
		{"bdjobs style", "Dec 23, 2025", "2025-12-23", true},
		{"day first", "23 Dec 2025", "2025-12-23", true},
		{"slash dmy", "23/12/2025", "2025-12-23", true},
		{"excel serial", "45992", "2025-12-01", true},
		{"empty", "", "", false},
		{"pandas nan", "nan", "", false},
		{"pandas nat", "NaT", "", false},
		{"garbage", "soon", "", false},
		{"small number is not a serial", "12", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, FormatDate(got))
			}
		})
	}
}

func TestFormatDateZero(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestFilterSince(t *testing.T) {
	records := []models.Record{
		{JobID: "old", PostedOn: "2024-06-01"},
		{JobID: "new", PostedOn: "2025-02-01"},
		{JobID: "unparseable", PostedOn: "soon"},
	}

	out := FilterSince(records, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].JobID)
}
