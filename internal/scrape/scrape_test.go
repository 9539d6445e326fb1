package scrape

import (
	"context"
	"errors"
	"sort"
	"testing"

	"jobsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "no markup", "no markup"},
		{"list items", "<ul><li>First</li><li>Second</li></ul>", "First; Second"},
		{"paragraphs", "<p>One.</p><p>Two.</p>", "One.; Two."},
		{"entities", "<p>Salary &amp; benefits</p>", "Salary & benefits"},
		{"line breaks", "Line one<br/>Line two", "Line one; Line two"},
		{"nested whitespace", "<p>  spaced   out  </p>", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenHTML(tt.in))
		})
	}
}

func TestFetchDetails(t *testing.T) {
	ids := []string{"1", "2", "3", "4"}

	records, failed := FetchDetails(context.Background(), ids, 3, zap.NewNop(),
		func(ctx context.Context, id string) (*models.Record, error) {
			if id == "3" {
				return nil, errors.New("boom")
			}
			return &models.Record{JobID: id}, nil
		})

	assert.Equal(t, 1, failed)
	require.Len(t, records, 3)

	var got []string
	for _, rec := range records {
		got = append(got, rec.JobID)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"1", "2", "4"}, got)
}

func TestFetchDetailsEmpty(t *testing.T) {
	records, failed := FetchDetails(context.Background(), nil, 2, zap.NewNop(),
		func(ctx context.Context, id string) (*models.Record, error) {
			t.Error("must not be called")
			return nil, nil
		})
	assert.Empty(t, records)
	assert.Zero(t, failed)
}
