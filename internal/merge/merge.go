package merge

import (
	"strconv"
	"strings"
	"time"

	"jobsweep/internal/models"

	"go.uber.org/zap"
)

const notSpecified = "Not Specified"

type Stats struct {
	RawRows        int
	AfterDedup     int
	DatesParsed    int
	SalariesParsed int
}

type Merger struct {
	logger *zap.Logger
}

func NewMerger(logger *zap.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge concatenates per-source record sets into the unified dataset:
// composite-key dedup (first occurrence wins), normalized dates, cleaned
// text fields, region tag and annualized USD salary.
func (m *Merger) Merge(sources ...[]models.Record) ([]models.Record, Stats) {
	var stats Stats

	var all []models.Record
	for _, records := range sources {
		all = append(all, records...)
	}
	stats.RawRows = len(all)

	seen := make(map[string]bool, len(all))
	merged := make([]models.Record, 0, len(all))

	for _, rec := range all {
		if t, ok := ParseDate(rec.PostedOn); ok {
			rec.PostedOn = FormatDate(t)
			stats.DatesParsed++
		} else {
			rec.PostedOn = ""
		}

		rec.Title = cleanText(rec.Title)
		rec.Company = cleanText(rec.Company)
		rec.Location = cleanText(rec.Location)
		rec.Skills = cleanText(rec.Skills)

		key := rec.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		rec.Region = RegionFor(rec.Country)

		if usd, ok := SalaryUSDAnnual(rec.SalaryRange, rec.Country, rec.Source); ok {
			rec.SalaryUSDAnnual = strconv.FormatFloat(usd, 'f', 2, 64)
			stats.SalariesParsed++
		} else {
			rec.SalaryUSDAnnual = ""
		}

		merged = append(merged, rec)
	}

	stats.AfterDedup = len(merged)
	m.logger.Info("merged sources",
		zap.Int("raw_rows", stats.RawRows),
		zap.Int("after_dedup", stats.AfterDedup),
		zap.Int("dates_parsed", stats.DatesParsed),
		zap.Int("salaries_parsed", stats.SalariesParsed))

	return merged, stats
}

// FilterSince drops records posted before the cutoff, along with records
// whose posting date never parsed. Used to cut the published dataset to the
// collection window.
func FilterSince(records []models.Record, cutoff time.Time) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		t, ok := ParseDate(rec.PostedOn)
		if !ok || t.Before(cutoff) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "", "nan", "NaT", "None":
		return notSpecified
	}
	return s
}
