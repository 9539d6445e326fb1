package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"jobsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "a b c", Clean("a\tb\nc"))
	assert.Equal(t, "plain", Clean("plain"))
	assert.Equal(t, "nul", Clean("n\x00u\x01l"))
}

func TestWriteAndReadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "jobs.tsv")

	records := []models.Record{
		{
			JobID:       "101",
			Title:       "Data Engineer",
			Company:     "Acme",
			Location:    "Dhaka",
			PostedOn:    "2025-11-01",
			Description: "builds\tpipelines\nand dashboards",
			SalaryRange: "Tk. 50000",
			Source:      "BDJobs",
			Country:     "Bangladesh",
		},
	}

	require.NoError(t, WriteTSV(path, MasterColumns, records))

	got, err := ReadTSV(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "101", got[0].JobID)
	assert.Equal(t, "Data Engineer", got[0].Title)
	// Tabs and newlines inside cells are flattened on write.
	assert.Equal(t, "builds pipelines and dashboards", got[0].Description)
	assert.Equal(t, "Bangladesh", got[0].Country)
}

func TestReadTSVLegacyHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Job ID\tJob Title\tCity\tMin Salary\tMax Salary",
		"7\tQA Engineer\tLahore\t40000\t60000",
	}, "\n")

	records, err := readTSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Lahore", records[0].Location)
	assert.Equal(t, "40000 - 60000", records[0].SalaryRange)
}

func TestStoreAppendDeduplicatesByJobID(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	first := []models.Record{
		{JobID: "1", Title: "Old Title", Source: "BDJobs", Country: "Bangladesh"},
		{JobID: "2", Title: "Kept", Source: "BDJobs", Country: "Bangladesh"},
	}
	total, err := store.Append("BDJobs", first)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Re-scraping job 1 replaces the stored row.
	second := []models.Record{
		{JobID: "1", Title: "New Title", Source: "BDJobs", Country: "Bangladesh"},
		{JobID: "3", Title: "Added", Source: "BDJobs", Country: "Bangladesh"},
	}
	total, err = store.Append("BDJobs", second)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	records, ids, err := store.Load("BDJobs")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, ids.Contains("1"))
	assert.True(t, ids.Contains("3"))
	assert.Equal(t, "New Title", records[0].Title)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	records, ids, err := store.Load("JobStreet (SG)")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, ids.Cardinality())
}
