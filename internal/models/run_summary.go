package models

const (
	StatusCompleted  = "Completed"
	StatusWithIssues = "Completed with issues"
	StatusNoNewJobs  = "No new jobs"
	StatusFailed     = "Failed"
	StatusSaveFailed = "Save Failed"
	StatusCrashed    = "Crashed"
	StatusSkipped    = "Skipped"
)

// RunSummary records one scraper execution. The report command consumes the
// accumulated summaries of a run.
type RunSummary struct {
	Status       string   `json:"status"`
	ExistingJobs int      `json:"existing_jobs"`
	NewlyAdded   int      `json:"newly_added"`
	NewTotal     int      `json:"new_total"`
	Issues       []string `json:"issues"`
}
