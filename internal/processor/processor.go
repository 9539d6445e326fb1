// Package processor consumes scraped job records off the queue, normalizes
// them (posting date, region, USD salary) and writes them to ClickHouse.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobsweep/internal/cache"
	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/merge"
	"jobsweep/internal/models"
	"jobsweep/internal/store"
	"jobsweep/internal/telemetry"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RecordProcessor struct {
	logger *zap.Logger
	repo   *store.JobsRepository
	cache  cache.Cache
	tracer trace.Tracer
}

func NewRecordProcessor(logger *zap.Logger, repo *store.JobsRepository, recordCache cache.Cache) *RecordProcessor {
	return &RecordProcessor{
		logger: logger,
		repo:   repo,
		cache:  recordCache,
		tracer: telemetry.GetTracer("jobsweep/processor"),
	}
}

func (p *RecordProcessor) ProcessRecord(ctx context.Context, rawData []byte) error {
	ctx, span := p.tracer.Start(ctx, "ProcessRecord")
	defer span.End()

	var record models.Record
	if err := json.Unmarshal(rawData, &record); err != nil {
		span.RecordError(err)
		return apperrors.Parse("unmarshaling job record", err)
	}

	if record.JobID == "" || record.Source == "" {
		return apperrors.InvalidInput("record missing job id or source", nil)
	}

	cacheKey := fmt.Sprintf("processed:%s:%s", record.Source, record.JobID)
	var marker string
	if err := p.cache.Get(ctx, cacheKey, &marker); err == nil {
		p.logger.Debug("skipping already processed record",
			zap.String("source", record.Source),
			zap.String("job_id", record.JobID))
		return nil
	}

	job := Normalize(&record, time.Now().UTC())
	if err := p.repo.Insert(ctx, job); err != nil {
		span.RecordError(err)
		return fmt.Errorf("store job record: %w", err)
	}

	if err := p.cache.Set(ctx, cacheKey, "1", 0); err != nil {
		p.logger.Warn("failed to mark record as processed", zap.Error(err))
	}

	return nil
}

// Normalize turns a raw scraped record into the row shape the analytics
// tables want: parsed posting date, region tag and annualized USD salary.
func Normalize(record *models.Record, now time.Time) *store.Job {
	job := &store.Job{
		ID:                     store.DeterministicID(record.Source, record.JobID),
		JobID:                  record.JobID,
		Title:                  record.Title,
		Company:                record.Company,
		Location:               record.Location,
		Experience:             record.Experience,
		Education:              record.Education,
		Skills:                 record.Skills,
		Description:            record.Description,
		SalaryRange:            record.SalaryRange,
		AdditionalRequirements: record.AdditionalRequirements,
		URL:                    record.URL,
		Source:                 record.Source,
		Country:                record.Country,
		Region:                 merge.RegionFor(record.Country),
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if t, ok := merge.ParseDate(record.PostedOn); ok {
		d := t
		job.PostedOn = &d
	}

	if usd, ok := merge.SalaryUSDAnnual(record.SalaryRange, record.Country, record.Source); ok {
		job.SalaryUSDAnnual = &usd
	}

	return job
}
