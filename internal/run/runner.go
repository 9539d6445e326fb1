// Package run orchestrates a full scraping pass: every configured board in
// sequence, each one isolated so a crash in one cannot take down the rest,
// with a summary per board accumulated for the report step.
package run

import (
	"context"
	"fmt"

	"jobsweep/internal/dataset"
	"jobsweep/internal/events"
	"jobsweep/internal/models"
	"jobsweep/internal/scrape"
	"jobsweep/internal/telemetry"

	"go.uber.org/zap"
)

type Runner struct {
	scrapers  []scrape.Scraper
	masters   *dataset.Store
	summaries *SummaryStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewRunner wires the runner. publisher may be nil when no queue is
// configured; records then only land in the master files.
func NewRunner(scrapers []scrape.Scraper, masters *dataset.Store, summaries *SummaryStore,
	publisher events.Publisher, logger *zap.Logger) *Runner {
	return &Runner{
		scrapers:  scrapers,
		masters:   masters,
		summaries: summaries,
		publisher: publisher,
		logger:    logger,
	}
}

// Run executes every scraper in order. Individual failures are recorded in
// that scraper's summary and do not abort the pass; only context
// cancellation stops the loop.
func (r *Runner) Run(ctx context.Context) error {
	ctx, span := telemetry.GetTracer("jobsweep/run").Start(ctx, "ScrapeRun")
	defer span.End()

	for _, s := range r.scrapers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		summary := r.runOne(ctx, s)
		if err := r.summaries.Save(s.Name(), summary); err != nil {
			r.logger.Error("failed to save run summary",
				zap.String("scraper", s.Name()),
				zap.Error(err))
		}

		r.logger.Info("scraper finished",
			zap.String("scraper", s.Name()),
			zap.String("status", summary.Status),
			zap.Int("newly_added", summary.NewlyAdded),
			zap.Int("new_total", summary.NewTotal))
	}

	return nil
}

func (r *Runner) runOne(ctx context.Context, s scrape.Scraper) (summary models.RunSummary) {
	logger := r.logger.With(zap.String("scraper", s.Name()))

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("scraper panicked", zap.Any("panic", rec))
			summary.Status = models.StatusCrashed
			summary.Issues = append(summary.Issues, fmt.Sprintf("scraper crashed: %v", rec))
		}
	}()

	_, known, err := r.masters.Load(s.Name())
	if err != nil {
		logger.Error("failed to load master file", zap.Error(err))
		return models.RunSummary{
			Status: models.StatusFailed,
			Issues: []string{fmt.Sprintf("could not read master file: %v", err)},
		}
	}
	existing := known.Cardinality()

	logger.Info("starting scraper", zap.Int("existing_jobs", existing))

	result, err := s.Fetch(ctx, known)
	summary = models.RunSummary{
		ExistingJobs: existing,
		NewTotal:     existing,
		Issues:       result.Issues,
	}
	if err != nil {
		logger.Error("scraper failed", zap.Error(err))
		summary.Status = models.StatusFailed
		summary.Issues = append(summary.Issues, err.Error())
		return summary
	}

	if len(result.Records) == 0 {
		summary.Status = models.StatusNoNewJobs
		return summary
	}

	total, err := r.masters.Append(s.Name(), result.Records)
	if err != nil {
		logger.Error("failed to update master file", zap.Error(err))
		summary.Status = models.StatusSaveFailed
		summary.Issues = append(summary.Issues, fmt.Sprintf("master file save failed: %v", err))
		return summary
	}

	summary.NewlyAdded = len(result.Records)
	summary.NewTotal = total
	if len(summary.Issues) > 0 {
		summary.Status = models.StatusWithIssues
	} else {
		summary.Status = models.StatusCompleted
	}

	r.publish(ctx, logger, result.Records)

	return summary
}

func (r *Runner) publish(ctx context.Context, logger *zap.Logger, records []models.Record) {
	if r.publisher == nil {
		return
	}

	var failed int
	for i := range records {
		if err := r.publisher.PublishRecord(ctx, &records[i]); err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("some records were not published", zap.Int("failed", failed))
	}
}
