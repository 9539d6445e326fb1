package run

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jobsweep/internal/dataset"
	"jobsweep/internal/events"
	"jobsweep/internal/models"
	"jobsweep/internal/scrape"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScraper struct {
	name    string
	records []models.Record
	issues  []string
	err     error
	panics  bool
}

func (f *fakeScraper) Name() string    { return f.name }
func (f *fakeScraper) Source() string  { return f.name }
func (f *fakeScraper) Country() string { return "Testland" }

func (f *fakeScraper) Fetch(ctx context.Context, known mapset.Set[string]) (scrape.Result, error) {
	if f.panics {
		panic("scraper exploded")
	}
	var fresh []models.Record
	for _, rec := range f.records {
		if !known.Contains(rec.JobID) {
			fresh = append(fresh, rec)
		}
	}
	return scrape.Result{Records: fresh, Issues: f.issues}, f.err
}

type fakePublisher struct {
	published []string
}

func (p *fakePublisher) PublishRecord(ctx context.Context, record *models.Record) error {
	p.published = append(p.published, record.JobID)
	return nil
}

func (p *fakePublisher) Close() {}

func TestSummaryStoreRoundTrip(t *testing.T) {
	store := NewSummaryStore(filepath.Join(t.TempDir(), "nested", "run_summary.json"))

	require.NoError(t, store.Save("BDJobs", models.RunSummary{
		Status:     models.StatusCompleted,
		NewlyAdded: 5,
		NewTotal:   105,
	}))
	require.NoError(t, store.Save("Rozee.pk", models.RunSummary{
		Status: models.StatusNoNewJobs,
	}))

	summaries, err := store.Load()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 5, summaries["BDJobs"].NewlyAdded)
	assert.Equal(t, models.StatusNoNewJobs, summaries["Rozee.pk"].Status)

	require.NoError(t, store.Clear())
	summaries, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, summaries)

	// Clearing an already-missing file is not an error.
	require.NoError(t, store.Clear())
}

func newTestRunner(t *testing.T, scrapers []scrape.Scraper, publisher events.Publisher) (*Runner, *SummaryStore) {
	t.Helper()
	dir := t.TempDir()
	summaries := NewSummaryStore(filepath.Join(dir, "run_summary.json"))

	runner := NewRunner(scrapers, dataset.NewStore(dir, zap.NewNop()), summaries, publisher, zap.NewNop())
	return runner, summaries
}

func TestRunnerHappyPath(t *testing.T) {
	publisher := &fakePublisher{}
	scraper := &fakeScraper{
		name: "BDJobs",
		records: []models.Record{
			{JobID: "1", Title: "A", Source: "BDJobs", Country: "Bangladesh"},
			{JobID: "2", Title: "B", Source: "BDJobs", Country: "Bangladesh"},
		},
	}

	runner, summaries := newTestRunner(t, []scrape.Scraper{scraper}, publisher)
	require.NoError(t, runner.Run(context.Background()))

	saved, err := summaries.Load()
	require.NoError(t, err)
	summary := saved["BDJobs"]
	assert.Equal(t, models.StatusCompleted, summary.Status)
	assert.Equal(t, 0, summary.ExistingJobs)
	assert.Equal(t, 2, summary.NewlyAdded)
	assert.Equal(t, 2, summary.NewTotal)
	assert.ElementsMatch(t, []string{"1", "2"}, publisher.published)

	// A second run over the same data finds nothing new.
	require.NoError(t, runner.Run(context.Background()))
	saved, err = summaries.Load()
	require.NoError(t, err)
	summary = saved["BDJobs"]
	assert.Equal(t, models.StatusNoNewJobs, summary.Status)
	assert.Equal(t, 2, summary.ExistingJobs)
	assert.Equal(t, 2, summary.NewTotal)
}

func TestRunnerIsolatesFailures(t *testing.T) {
	scrapers := []scrape.Scraper{
		&fakeScraper{name: "Crashy", panics: true},
		&fakeScraper{name: "Broken", err: errors.New("connection refused")},
		&fakeScraper{name: "Fine", records: []models.Record{
			{JobID: "9", Title: "C", Source: "Fine", Country: "Testland"},
		}},
	}

	runner, summaries := newTestRunner(t, scrapers, nil)
	require.NoError(t, runner.Run(context.Background()))

	saved, err := summaries.Load()
	require.NoError(t, err)
	require.Len(t, saved, 3)

	assert.Equal(t, models.StatusCrashed, saved["Crashy"].Status)
	assert.Equal(t, models.StatusFailed, saved["Broken"].Status)
	assert.NotEmpty(t, saved["Broken"].Issues)
	assert.Equal(t, models.StatusCompleted, saved["Fine"].Status)
	assert.Equal(t, 1, saved["Fine"].NewlyAdded)
}

func TestRunnerRecordsIssues(t *testing.T) {
	scraper := &fakeScraper{
		name:   "Flaky",
		issues: []string{"page 3 failed"},
		records: []models.Record{
			{JobID: "5", Title: "D", Source: "Flaky", Country: "Testland"},
		},
	}

	runner, summaries := newTestRunner(t, []scrape.Scraper{scraper}, nil)
	require.NoError(t, runner.Run(context.Background()))

	saved, err := summaries.Load()
	require.NoError(t, err)
	summary := saved["Flaky"]
	assert.Equal(t, models.StatusWithIssues, summary.Status)
	assert.Equal(t, []string{"page 3 failed"}, summary.Issues)
}
