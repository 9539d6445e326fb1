package report

import (
	"strings"
	"testing"
	"time"

	"jobsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummaries() map[string]models.RunSummary {
	return map[string]models.RunSummary{
		"BDJobs": {
			Status:       models.StatusCompleted,
			ExistingJobs: 1000,
			NewlyAdded:   50,
			NewTotal:     1050,
		},
		"Noukri.com": {
			Status:       models.StatusWithIssues,
			ExistingJobs: 2000,
			NewlyAdded:   10,
			NewTotal:     2010,
			Issues:       []string{"search page 4 failed"},
		},
		"Rozee.pk": {
			Status:       models.StatusFailed,
			ExistingJobs: 500,
			NewTotal:     500,
			Issues:       []string{"connection refused"},
		},
	}
}

func TestBuild(t *testing.T) {
	report := Build(sampleSummaries())

	// Every known scraper gets a row, in fixed order, even without a summary.
	require.Len(t, report.Rows, 6)
	assert.Equal(t, "BDJobs", report.Rows[0].Source)
	assert.Equal(t, "Noukri.com", report.Rows[1].Source)
	assert.Equal(t, "Rozee.pk", report.Rows[2].Source)
	assert.Equal(t, models.StatusSkipped, report.Rows[3].Status)
	assert.Equal(t, models.StatusSkipped, report.Rows[4].Status)
	assert.Equal(t, models.StatusSkipped, report.Rows[5].Status)

	assert.Equal(t, 3500, report.GrandExisting)
	assert.Equal(t, 60, report.GrandAdded)
	assert.Equal(t, 3560, report.GrandTotal)

	require.Len(t, report.Issues, 2)
	assert.Contains(t, report.Issues[0], "Noukri.com:")
	assert.Contains(t, report.Issues[1], "Rozee.pk:")
}

func TestRowFailed(t *testing.T) {
	assert.True(t, Row{Status: models.StatusFailed}.Failed())
	assert.True(t, Row{Status: models.StatusSaveFailed}.Failed())
	assert.True(t, Row{Status: models.StatusCrashed}.Failed())
	assert.False(t, Row{Status: models.StatusCompleted}.Failed())
	assert.False(t, Row{Status: models.StatusNoNewJobs}.Failed())
}

func TestSubject(t *testing.T) {
	withIssues := Build(sampleSummaries())
	assert.True(t, strings.HasPrefix(withIssues.Subject(), "⚠️"))
	assert.Contains(t, withIssues.Subject(), "+60 Jobs Added")

	clean := Build(map[string]models.RunSummary{
		"BDJobs": {Status: models.StatusCompleted, NewlyAdded: 7, NewTotal: 7},
	})
	assert.True(t, strings.HasPrefix(clean.Subject(), "🚀"))

	idle := Build(map[string]models.RunSummary{
		"BDJobs": {Status: models.StatusNoNewJobs, ExistingJobs: 10, NewTotal: 10},
	})
	assert.True(t, strings.HasPrefix(idle.Subject(), "💤"))
}

func TestRenderHTML(t *testing.T) {
	report := Build(sampleSummaries())
	now := time.Date(2025, 11, 15, 8, 30, 0, 0, time.UTC)

	html, err := RenderHTML(report, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Saturday, 15 November 2025")
	assert.Contains(t, html, "3,500")
	assert.Contains(t, html, "+60")
	assert.Contains(t, html, "3,560")
	assert.Contains(t, html, "BDJobs")
	assert.Contains(t, html, "Attention Required")
	assert.Contains(t, html, "search page 4 failed")
	assert.Contains(t, html, "20251115-0830")
}

func TestFormatTelegram(t *testing.T) {
	report := Build(sampleSummaries())
	text := formatTelegram(report)

	assert.Contains(t, text, "BDJobs: +50 (total 1050, Completed)")
	assert.Contains(t, text, "✗ Rozee.pk")
	assert.Contains(t, text, "Grand total: 3560 (+60 today)")
	assert.Contains(t, text, "Issues (2):")
}
