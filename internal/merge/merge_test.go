package merge

import (
	"testing"

	"jobsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegionFor(t *testing.T) {
	assert.Equal(t, RegionSouthAsia, RegionFor("Bangladesh"))
	assert.Equal(t, RegionSouthAsia, RegionFor("India"))
	assert.Equal(t, RegionSouthAsia, RegionFor("Pakistan"))
	assert.Equal(t, RegionSouthEastAsia, RegionFor("Singapore"))
	assert.Equal(t, RegionSouthEastAsia, RegionFor("Philippines"))
	assert.Equal(t, RegionSouthEastAsia, RegionFor("Indonesia"))
}

func TestMergeDeduplicates(t *testing.T) {
	merger := NewMerger(zap.NewNop())

	bd := []models.Record{
		{JobID: "1", Title: "Backend Engineer", Company: "Acme", Location: "Dhaka",
			PostedOn: "2025-11-01", Source: "BDJobs", Country: "Bangladesh"},
		// Same job listed twice, differing only in whitespace and case.
		{JobID: "2", Title: " backend engineer ", Company: "ACME", Location: "dhaka",
			PostedOn: "2025-11-01", Source: "BDJobs", Country: "Bangladesh"},
	}
	naukri := []models.Record{
		{JobID: "3", Title: "Backend Engineer", Company: "Acme", Location: "Pune",
			PostedOn: "2025-11-01", Source: "Naukri", Country: "India",
			SalaryRange: "5-10 Lacs PA"},
	}

	merged, stats := merger.Merge(bd, naukri)

	require.Len(t, merged, 2)
	assert.Equal(t, 3, stats.RawRows)
	assert.Equal(t, 2, stats.AfterDedup)

	assert.Equal(t, "1", merged[0].JobID)
	assert.Equal(t, RegionSouthAsia, merged[0].Region)
	assert.Equal(t, "", merged[0].SalaryUSDAnnual)

	assert.Equal(t, "3", merged[1].JobID)
	assert.Equal(t, "9000.00", merged[1].SalaryUSDAnnual)
}

func TestMergeCleansTextAndDates(t *testing.T) {
	merger := NewMerger(zap.NewNop())

	records := []models.Record{
		{JobID: "1", Title: "nan", Company: "Acme", Location: "",
			PostedOn: "Dec 23, 2025", Skills: "None", Source: "BDJobs", Country: "Bangladesh"},
		{JobID: "2", Title: "QA Engineer", Company: "Beta", Location: "Karachi",
			PostedOn: "soon", Source: "Rozee", Country: "Pakistan"},
	}

	merged, stats := merger.Merge(records)

	require.Len(t, merged, 2)
	assert.Equal(t, "Not Specified", merged[0].Title)
	assert.Equal(t, "Not Specified", merged[0].Location)
	assert.Equal(t, "Not Specified", merged[0].Skills)
	assert.Equal(t, "2025-12-23", merged[0].PostedOn)

	// Unparseable dates get blanked rather than carried through.
	assert.Equal(t, "", merged[1].PostedOn)
	assert.Equal(t, 1, stats.DatesParsed)
}
