package merge

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen across the sources: Naukri emits timestamps, BDJobs
// emits "Dec 23, 2025", JobStreet is resolved to plain dates at scrape time.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
	"02/01/2006",
	"2006/01/02",
}

// excelEpoch is day zero of the 1900 date system used by spreadsheet
// serial dates found in historical master files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate never errors: an unparseable value yields a zero time so one
// bad row cannot fail a merge.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" || s == "nan" || s == "NaT" || s == "None" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 59 && serial < 80000 {
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
		return t, true
	}

	return time.Time{}, false
}

// FormatDate renders a parsed posting date back into the dataset. Dates with
// a time-of-day keep it; plain dates stay plain.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
