package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"jobsweep/internal/models"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// Store manages the per-source master files: one TSV per source under the
// data directory, unique by Job ID with the newest row winning.
type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

func (s *Store) path(source string) string {
	name := strings.ToLower(strings.ReplaceAll(source, " ", "_"))
	name = strings.NewReplacer("(", "", ")", "").Replace(name)
	return filepath.Join(s.dir, name+"_master_data.tsv")
}

// Load returns the master records for a source together with the set of
// known job IDs. A missing master file is an empty dataset, not an error.
func (s *Store) Load(source string) ([]models.Record, mapset.Set[string], error) {
	ids := mapset.NewSet[string]()

	records, err := ReadTSV(s.path(source))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ids, nil
		}
		return nil, ids, err
	}

	for _, rec := range records {
		if id := strings.TrimSpace(rec.JobID); id != "" {
			ids.Add(id)
		}
	}

	return records, ids, nil
}

// Append merges new records into a source's master file, deduplicating by
// Job ID with last write winning, and returns the new total.
func (s *Store) Append(source string, newRecords []models.Record) (int, error) {
	existing, _, err := s.Load(source)
	if err != nil {
		return 0, err
	}

	index := make(map[string]int, len(existing))
	combined := make([]models.Record, 0, len(existing)+len(newRecords))
	for _, rec := range existing {
		rec.JobID = strings.TrimSpace(rec.JobID)
		if rec.JobID == "" {
			continue
		}
		if at, ok := index[rec.JobID]; ok {
			combined[at] = rec
			continue
		}
		index[rec.JobID] = len(combined)
		combined = append(combined, rec)
	}
	for _, rec := range newRecords {
		rec.JobID = strings.TrimSpace(rec.JobID)
		if rec.JobID == "" {
			continue
		}
		if at, ok := index[rec.JobID]; ok {
			combined[at] = rec
			continue
		}
		index[rec.JobID] = len(combined)
		combined = append(combined, rec)
	}

	if err := WriteTSV(s.path(source), MasterColumns, combined); err != nil {
		return 0, err
	}

	s.logger.Info("master file updated",
		zap.String("source", source),
		zap.Int("total_unique", len(combined)))

	return len(combined), nil
}
