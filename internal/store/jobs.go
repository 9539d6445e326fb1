// Package store is the ClickHouse persistence layer for normalized job
// postings and the analytics queries the dashboard API serves.
package store

import (
	"context"
	"fmt"
	"time"

	"jobsweep/internal/database"
	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var jobNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Job is one normalized posting as stored in ClickHouse.
type Job struct {
	ID                     uuid.UUID
	JobID                  string
	Title                  string
	Company                string
	Location               string
	PostedOn               *time.Time
	Experience             string
	Education              string
	Skills                 string
	Description            string
	SalaryRange            string
	AdditionalRequirements string
	URL                    string
	Source                 string
	Country                string
	Region                 string
	SalaryUSDAnnual        *float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DeterministicID derives the row UUID from the source and its job id, so
// re-processing the same posting replaces rather than duplicates it.
func DeterministicID(source, jobID string) uuid.UUID {
	return uuid.NewSHA1(jobNamespace, []byte(source+":"+jobID))
}

type JobsRepository struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
}

func NewJobsRepository(db *database.Database, logger *zap.Logger) *JobsRepository {
	return &JobsRepository{
		conn:   db.Conn(),
		logger: logger,
		tracer: telemetry.GetTracer("jobsweep/store"),
	}
}

func (r *JobsRepository) Insert(ctx context.Context, job *Job) error {
	ctx, span := r.tracer.Start(ctx, "InsertJob")
	defer span.End()

	query := `
		INSERT INTO jobs (
			id, job_id, title, company, location, posted_on,
			experience, education, skills, description, salary_range,
			additional_requirements, url, source, country, region,
			salary_usd_annual, created_at, updated_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	if err := r.conn.Exec(ctx, query,
		job.ID,
		job.JobID,
		job.Title,
		job.Company,
		job.Location,
		job.PostedOn,
		job.Experience,
		job.Education,
		job.Skills,
		job.Description,
		job.SalaryRange,
		job.AdditionalRequirements,
		job.URL,
		job.Source,
		job.Country,
		job.Region,
		job.SalaryUSDAnnual,
		job.CreatedAt,
		job.UpdatedAt,
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert job: %w", err)
	}

	return nil
}

// KPIReport holds the headline numbers of the dataset.
type KPIReport struct {
	TotalJobs      uint64 `json:"total_jobs"`
	TotalCompanies uint64 `json:"total_companies"`
	TotalCountries uint64 `json:"total_countries"`
}

func (r *JobsRepository) KPI(ctx context.Context) (*KPIReport, error) {
	ctx, span := r.tracer.Start(ctx, "KPI")
	defer span.End()

	query := `
		SELECT
			count(),
			uniqExact(company),
			uniqExact(country)
		FROM jobs FINAL
	`

	var report KPIReport
	row := r.conn.QueryRow(ctx, query)
	if err := row.Scan(&report.TotalJobs, &report.TotalCompanies, &report.TotalCountries); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query kpi: %w", err)
	}

	return &report, nil
}

// NameCount is one bucket of a distribution.
type NameCount struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

// distributionColumns whitelists the variables a caller may group by.
// Anything else is rejected before it gets near the query text.
var distributionColumns = map[string]string{
	"company":  "company",
	"location": "location",
	"skills":   "skills",
	"source":   "source",
}

// Distribution returns the top 15 values of variable, optionally filtered to
// one country ("All" means no filter).
func (r *JobsRepository) Distribution(ctx context.Context, country, variable string) ([]NameCount, error) {
	ctx, span := r.tracer.Start(ctx, "Distribution")
	span.SetAttributes(
		telemetry.String("country", country),
		telemetry.String("variable", variable),
	)
	defer span.End()

	column, ok := distributionColumns[variable]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid distribution variable %q", variable), nil)
	}

	query := fmt.Sprintf(`
		SELECT %s AS name, count() AS cnt
		FROM jobs FINAL
		WHERE name != '' AND name != 'Not Specified'
	`, column)

	var args []any
	if country != "" && country != "All" {
		query += " AND country = ?"
		args = append(args, country)
	}
	query += " GROUP BY name ORDER BY cnt DESC LIMIT 15"

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query distribution: %w", err)
	}
	defer rows.Close()

	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("scan distribution row: %w", err)
		}
		out = append(out, nc)
	}

	return out, rows.Err()
}

// MonthCount is one month of posting volume.
type MonthCount struct {
	Month string `json:"month"`
	Count uint64 `json:"count"`
}

// Trend returns monthly posting counts in chronological order, optionally
// filtered to one country.
func (r *JobsRepository) Trend(ctx context.Context, country string) ([]MonthCount, error) {
	ctx, span := r.tracer.Start(ctx, "Trend")
	span.SetAttributes(telemetry.String("country", country))
	defer span.End()

	query := `
		SELECT formatDateTime(toStartOfMonth(posted_on), '%Y-%m') AS month, count() AS cnt
		FROM jobs FINAL
		WHERE posted_on IS NOT NULL
	`

	var args []any
	if country != "" && country != "All" {
		query += " AND country = ?"
		args = append(args, country)
	}
	query += " GROUP BY month ORDER BY month"

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query trend: %w", err)
	}
	defer rows.Close()

	var out []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		out = append(out, mc)
	}

	return out, rows.Err()
}

// RegionCount is one region's share of the dataset.
type RegionCount struct {
	Region string `json:"region"`
	Count  uint64 `json:"count"`
}

func (r *JobsRepository) RegionComparison(ctx context.Context) ([]RegionCount, error) {
	ctx, span := r.tracer.Start(ctx, "RegionComparison")
	defer span.End()

	query := `
		SELECT region, count() AS cnt
		FROM jobs FINAL
		WHERE region != ''
		GROUP BY region
		ORDER BY cnt DESC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query region comparison: %w", err)
	}
	defer rows.Close()

	var out []RegionCount
	for rows.Next() {
		var rc RegionCount
		if err := rows.Scan(&rc.Region, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan region row: %w", err)
		}
		out = append(out, rc)
	}

	return out, rows.Err()
}
