package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"jobsweep/internal/models"
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)

// Clean strips characters that corrupt tab-separated output: control bytes,
// and tabs/newlines inside a cell.
func Clean(s string) string {
	s = controlChars.ReplaceAllString(s, "")
	s = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
	return s
}

// WriteTSV writes records in the given column order, one row per record.
func WriteTSV(path string, columns []string, records []models.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = Clean(cellFor(rec, col))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// ReadTSV reads a dataset file, resolving header aliases from older exports
// ("City", "Job Description Snippet", split Min/Max salary columns).
// Unknown columns are ignored rather than rejected.
func ReadTSV(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readTSV(f)
}

func readTSV(r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make([]string, len(header))
	minSalaryIdx, maxSalaryIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case "Min Salary":
			minSalaryIdx = i
		case "Max Salary":
			maxSalaryIdx = i
		default:
			if canonical, ok := columnAliases[name]; ok {
				name = canonical
			}
			columns[i] = name
		}
	}

	var records []models.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		var rec models.Record
		for i, cell := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			setCell(&rec, columns[i], cell)
		}

		if rec.SalaryRange == "" && minSalaryIdx >= 0 && maxSalaryIdx >= 0 &&
			minSalaryIdx < len(row) && maxSalaryIdx < len(row) {
			min, max := strings.TrimSpace(row[minSalaryIdx]), strings.TrimSpace(row[maxSalaryIdx])
			if min != "" || max != "" {
				rec.SalaryRange = min + " - " + max
			}
		}

		records = append(records, rec)
	}

	return records, nil
}
