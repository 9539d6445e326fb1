// Package jobstreet scrapes the SEEK-operated JobStreet boards for
// Singapore, the Philippines and Indonesia. IDs come from the shared SEEK
// search API; details come from each country site's GraphQL endpoint.
package jobstreet

import (
	"context"
	"fmt"
	"time"

	"jobsweep/internal/config"
	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/models"
	"jobsweep/internal/scrape"
	"jobsweep/internal/telemetry"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

const (
	pageSize = 100

	// IT and adjacent classification IDs, shared across the three boards.
	classifications = "1200,6251,6304,1203,1204,7019,6163,1206,6076,6263,6123,1209,6205,1210,1211,1212,6317,6281,1214,1216,6092,6008,1225,6246,6261,1223,6362,6043,1220,6058"

	detailsQuery = "query JobDetails($jobId: ID!, $locale: Locale!, $timezone: Timezone!, $languageCode: LanguageCodeIso!) { jobDetails(id: $jobId) { job { id title advertiser { name } salary { label } location { label } listedAt { label(context: JOB_POSTED, length: SHORT, timezone: $timezone, locale: $locale) } classifications { label(languageCode: $languageCode) } content } } }"
)

// Variant holds the per-country settings of one JobStreet board.
type Variant struct {
	DisplayName string
	Country     string
	Host        string
	SiteKey     string
	CountryCode string
	Locale      string
	Timezone    string
}

var (
	Singapore = Variant{
		DisplayName: "JobStreet (SG)",
		Country:     "Singapore",
		Host:        "https://sg.jobstreet.com",
		SiteKey:     "SG-Main",
		CountryCode: "SG",
		Locale:      "en-SG",
		Timezone:    "Asia/Singapore",
	}
	Philippines = Variant{
		DisplayName: "JobStreet (PH)",
		Country:     "Philippines",
		Host:        "https://ph.jobstreet.com",
		SiteKey:     "PH-Main",
		CountryCode: "PH",
		Locale:      "en-PH",
		Timezone:    "Asia/Manila",
	}
	Indonesia = Variant{
		DisplayName: "JobStreet (ID)",
		Country:     "Indonesia",
		Host:        "https://id.jobstreet.com",
		SiteKey:     "ID-Main",
		CountryCode: "ID",
		Locale:      "en-ID",
		Timezone:    "Asia/Jakarta",
	}
)

type Scraper struct {
	client  *scrape.Client
	logger  *zap.Logger
	config  *config.Config
	variant Variant
	now     func() time.Time
}

func New(config *config.Config, logger *zap.Logger, variant Variant) *Scraper {
	return &Scraper{
		client:  scrape.NewClient(config.RequestTimeout, config.MaxRetries, config.RetryDelay),
		logger:  logger.With(zap.String("scraper", "jobstreet"), zap.String("site", variant.SiteKey)),
		config:  config,
		variant: variant,
		now:     time.Now,
	}
}

func (s *Scraper) Name() string    { return s.variant.DisplayName }
func (s *Scraper) Source() string  { return "JobStreet" }
func (s *Scraper) Country() string { return s.variant.Country }

func (s *Scraper) Fetch(ctx context.Context, known mapset.Set[string]) (scrape.Result, error) {
	ctx, span := telemetry.GetTracer("scrape.jobstreet").Start(ctx, "jobstreet.fetch")
	span.SetAttributes(telemetry.String("site", s.variant.SiteKey))
	defer span.End()

	var result scrape.Result

	newIDs, issues, err := s.collectNewIDs(ctx, known)
	result.Issues = issues
	if err != nil {
		return result, err
	}
	if len(newIDs) == 0 {
		return result, nil
	}

	s.logger.Info("collected new job ids", zap.Int("count", len(newIDs)))

	records, failed := scrape.FetchDetails(ctx, newIDs, s.config.DetailWorkers, s.logger, s.fetchDetail)
	if failed > 0 {
		result.Issues = append(result.Issues,
			fmt.Sprintf("%s: %d of %d job details could not be fetched", s.variant.DisplayName, failed, len(newIDs)))
	}

	result.Records = records
	span.SetAttributes(telemetry.Int("records", len(records)))
	return result, nil
}

type searchResponse struct {
	TotalCount int `json:"totalCount"`
	Data       []struct {
		ID idString `json:"id"`
	} `json:"data"`
}

func (s *Scraper) collectNewIDs(ctx context.Context, known mapset.Set[string]) ([]string, []string, error) {
	var (
		ids    []string
		issues []string
		seen   = mapset.NewSet[string]()
		total  = -1
	)

	headers := map[string]string{"Accept": "application/json"}

	for page := 1; ; page++ {
		if len(ids) >= s.config.NewJobTarget {
			break
		}
		if total >= 0 && (page-1)*pageSize >= total {
			break
		}

		url := fmt.Sprintf("%s?siteKey=%s&page=%d&pageSize=%d&classification=%s",
			s.config.JobStreetSearchURL, s.variant.SiteKey, page, pageSize, classifications)

		var resp searchResponse
		if err := s.client.GetJSON(ctx, url, headers, &resp); err != nil {
			if page == 1 {
				return nil, issues, err
			}
			issues = append(issues, fmt.Sprintf("%s: search page %d failed: %v", s.variant.DisplayName, page, err))
			continue
		}

		total = resp.TotalCount
		if total == 0 {
			issues = append(issues, fmt.Sprintf("%s: search API reported 0 total jobs", s.variant.DisplayName))
			break
		}

		for _, job := range resp.Data {
			id := string(job.ID)
			if id == "" || known.Contains(id) || !seen.Add(id) {
				continue
			}
			ids = append(ids, id)
			if len(ids) >= s.config.NewJobTarget {
				break
			}
		}

		select {
		case <-ctx.Done():
			return ids, issues, ctx.Err()
		case <-time.After(s.config.RequestDelay):
		}
	}

	return ids, issues, nil
}

type detailsResponse struct {
	Data struct {
		JobDetails struct {
			Job *struct {
				ID         idString `json:"id"`
				Title      string   `json:"title"`
				Advertiser struct {
					Name string `json:"name"`
				} `json:"advertiser"`
				Salary struct {
					Label string `json:"label"`
				} `json:"salary"`
				Location struct {
					Label string `json:"label"`
				} `json:"location"`
				ListedAt struct {
					Label string `json:"label"`
				} `json:"listedAt"`
				Classifications []struct {
					Label string `json:"label"`
				} `json:"classifications"`
				Content string `json:"content"`
			} `json:"job"`
		} `json:"jobDetails"`
	} `json:"data"`
}

func (s *Scraper) fetchDetail(ctx context.Context, id string) (*models.Record, error) {
	payload := map[string]any{
		"operationName": "JobDetails",
		"variables": map[string]any{
			"jobId":        id,
			"locale":       s.variant.Locale,
			"timezone":     s.variant.Timezone,
			"languageCode": "en",
		},
		"query": detailsQuery,
	}

	headers := map[string]string{
		"Origin":             s.variant.Host,
		"seek-request-brand": "jobstreet",
		"seek-request-country": s.variant.CountryCode,
		"X-Seek-Site":        "chalice",
	}

	var resp detailsResponse
	if err := s.client.PostJSON(ctx, s.variant.Host+"/graphql", headers, payload, &resp); err != nil {
		return nil, err
	}

	job := resp.Data.JobDetails.Job
	if job == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("job %s: empty graphql payload", id), nil)
	}

	sections := parseContent(job.Content)

	return &models.Record{
		JobID:                  string(job.ID),
		Title:                  job.Title,
		Company:                job.Advertiser.Name,
		Location:               job.Location.Label,
		PostedOn:               parseRelativeDate(job.ListedAt.Label, s.now()),
		Experience:             sections.Experience,
		Education:              sections.Education,
		Skills:                 sections.Skills,
		Description:            sections.Description,
		SalaryRange:            job.Salary.Label,
		AdditionalRequirements: sections.Requirements,
		URL:                    fmt.Sprintf("%s/job/%s", s.variant.Host, job.ID),
		Source:                 s.Source(),
		Country:                s.Country(),
	}, nil
}
