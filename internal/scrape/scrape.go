package scrape

import (
	"context"
	"sync"
	"sync/atomic"

	"jobsweep/internal/models"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// Result is what one scraper run produced. Issues are non-fatal problems
// worth surfacing in the run report (failed pages, skipped details).
type Result struct {
	Records []models.Record
	Issues  []string
}

// Scraper is one job-board client. Fetch collects postings the master
// dataset has not seen yet, bounded by the configured per-run target.
type Scraper interface {
	// Name is the display name used in run summaries ("JobStreet (SG)").
	Name() string

	// Source is the dataset Source column value ("JobStreet").
	Source() string

	Country() string

	Fetch(ctx context.Context, known mapset.Set[string]) (Result, error)
}

// FetchDetails runs fn over ids with a bounded worker pool and collects the
// successful records. The returned count of failures lets callers report
// partial runs.
func FetchDetails(ctx context.Context, ids []string, workers int, logger *zap.Logger,
	fn func(ctx context.Context, id string) (*models.Record, error)) ([]models.Record, int) {

	if workers < 1 {
		workers = 1
	}

	idChan := make(chan string)
	recordChan := make(chan models.Record)
	var failed int32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				rec, err := fn(ctx, id)
				if err != nil {
					atomic.AddInt32(&failed, 1)
					logger.Warn("detail fetch failed",
						zap.String("job_id", id),
						zap.Error(err))
					continue
				}
				recordChan <- *rec
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case idChan <- id:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(recordChan)
	}()

	var records []models.Record
	for rec := range recordChan {
		records = append(records, rec)
	}

	return records, int(atomic.LoadInt32(&failed))
}
