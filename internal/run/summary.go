package run

import (
	"encoding/json"
	"os"
	"path/filepath"

	"jobsweep/internal/models"
)

// SummaryStore persists per-scraper run summaries in one JSON file, keyed by
// scraper display name. Each save is a read-modify-write so scrapers running
// back to back accumulate into the same report.
type SummaryStore struct {
	path string
}

func NewSummaryStore(path string) *SummaryStore {
	return &SummaryStore{path: path}
}

func (s *SummaryStore) Load() (map[string]models.RunSummary, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]models.RunSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	summaries := map[string]models.RunSummary{}
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *SummaryStore) Save(name string, summary models.RunSummary) error {
	summaries, err := s.Load()
	if err != nil {
		return err
	}
	summaries[name] = summary

	data, err := json.MarshalIndent(summaries, "", "    ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Clear removes the summary file. The report command calls this after a
// successful send so the next run starts fresh.
func (s *SummaryStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
