// Package report turns the accumulated run summaries into a daily digest
// and delivers it by email and Telegram.
package report

import (
	"fmt"
	"strings"

	"jobsweep/internal/models"
)

// scraperOrder fixes the row order of the digest, whether or not every
// scraper ran.
var scraperOrder = []string{
	"BDJobs",
	"Noukri.com",
	"Rozee.pk",
	"JobStreet (SG)",
	"JobStreet (PH)",
	"JobStreet (ID)",
}

type Row struct {
	Source       string
	Status       string
	ExistingJobs int
	NewlyAdded   int
	TotalJobs    int
}

// Failed reports whether this row's run failed or crashed.
func (r Row) Failed() bool {
	s := strings.ToLower(r.Status)
	return strings.Contains(s, "fail") || strings.Contains(s, "crash")
}

type Report struct {
	Rows          []Row
	Issues        []string
	GrandExisting int
	GrandAdded    int
	GrandTotal    int
}

// Build assembles the digest from the per-scraper summaries. Scrapers with
// no summary appear as skipped so a silently dead one is visible.
func Build(summaries map[string]models.RunSummary) *Report {
	report := &Report{}

	for _, name := range scraperOrder {
		summary, ok := summaries[name]
		if !ok {
			summary.Status = models.StatusSkipped
		}

		for _, issue := range summary.Issues {
			report.Issues = append(report.Issues, fmt.Sprintf("%s: %s", name, issue))
		}

		report.GrandExisting += summary.ExistingJobs
		report.GrandAdded += summary.NewlyAdded
		report.GrandTotal += summary.NewTotal

		report.Rows = append(report.Rows, Row{
			Source:       name,
			Status:       summary.Status,
			ExistingJobs: summary.ExistingJobs,
			NewlyAdded:   summary.NewlyAdded,
			TotalJobs:    summary.NewTotal,
		})
	}

	return report
}

// Subject builds the mail subject line, flagging runs with issues.
func (r *Report) Subject() string {
	icon := "🚀"
	if r.GrandAdded == 0 {
		icon = "💤"
	}
	if len(r.Issues) > 0 {
		icon = "⚠️"
	}
	return fmt.Sprintf("%s Scraper Report: +%d Jobs Added", icon, r.GrandAdded)
}
