package migrations

import "jobsweep/internal/database/schema"

var CreateJobsTable = schema.Migration{
	Version:     1,
	Description: "Create jobs table",
	Up: `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID,
			job_id String,
			title String,
			company String,
			location String,
			posted_on Nullable(Date),
			experience String,
			education String,
			skills String,
			description String,
			salary_range String,
			additional_requirements String,
			url String,
			source String,
			country String,
			region String,
			salary_usd_annual Nullable(Float64),
			created_at DateTime,
			updated_at DateTime,
			PRIMARY KEY (id)
		) ENGINE = ReplacingMergeTree(updated_at)
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (id, created_at)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS jobs`,
}

// All lists every migration in version order.
var All = []schema.Migration{
	CreateJobsTable,
}
