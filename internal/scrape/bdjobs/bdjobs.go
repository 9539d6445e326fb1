// Package bdjobs scrapes bdjobs.com, the largest Bangladeshi job board.
// Job IDs come from a hidden input on the search result pages; the details
// come from the public gateway API behind the posting pages.
package bdjobs

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobsweep/internal/config"
	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/models"
	"jobsweep/internal/scrape"
	"jobsweep/internal/telemetry"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

var jobIDsPattern = regexp.MustCompile(`id="arrTempJobIds"[^>]*value="\[([^"\]]*)\]?"`)

type Scraper struct {
	client *scrape.Client
	logger *zap.Logger
	config *config.Config
}

func New(config *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: scrape.NewClient(config.RequestTimeout, config.MaxRetries, config.RetryDelay),
		logger: logger.With(zap.String("scraper", "bdjobs")),
		config: config,
	}
}

func (s *Scraper) Name() string    { return "BDJobs" }
func (s *Scraper) Source() string  { return "BDJobs" }
func (s *Scraper) Country() string { return "Bangladesh" }

func (s *Scraper) Fetch(ctx context.Context, known mapset.Set[string]) (scrape.Result, error) {
	ctx, span := telemetry.GetTracer("scrape.bdjobs").Start(ctx, "bdjobs.fetch")
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
			fmt.Sprintf("BDJobs: %d of %d job details could not be fetched", failed, len(newIDs)))
	}

	result.Records = records
	span.SetAttributes(telemetry.Int("records", len(records)))
	return result, nil
}

// collectNewIDs walks the paged search results and keeps IDs the master
// dataset has not seen, up to the per-run target.
func (s *Scraper) collectNewIDs(ctx context.Context, known mapset.Set[string]) ([]string, []string, error) {
	var (
		ids        []string
		issues     []string
		seen       = mapset.NewSet[string]()
		emptyPages int
	)

	for page := 1; page <= s.config.BDJobsPages; page++ {
		if len(ids) >= s.config.NewJobTarget {
			break
		}

		url := fmt.Sprintf("%s?pg=%d&rpp=%d", s.config.BDJobsSearchURL, page, s.config.BDJobsPerPage)
		body, err := s.client.GetBody(ctx, url, nil)
		if err != nil {
			if page == 1 {
				return nil, issues, err
			}
			issues = append(issues, fmt.Sprintf("BDJobs: search page %d failed: %v", page, err))
			continue
		}

		pageIDs := parseJobIDs(string(body))
		if len(pageIDs) == 0 {
			emptyPages++
			if emptyPages >= 2 {
				break
			}
			continue
		}
		emptyPages = 0

		for _, id := range pageIDs {
			if known.Contains(id) || !seen.Add(id) {
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

func parseJobIDs(page string) []string {
	match := jobIDsPattern.FindStringSubmatch(page)
	if match == nil {
		return nil
	}

	var ids []string
	for _, part := range strings.Split(match[1], ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

type detailResponse struct {
	StatusCode string       `json:"statuscode"`
	Message    string       `json:"message"`
	Data       []detailData `json:"data"`
}

type detailData struct {
	JobID                 string `json:"JobId"`
	JobTitle              string `json:"JobTitle"`
	CompanyName           string `json:"CompnayName"` // sic, the gateway misspells it
	PostedOn              string `json:"PostedOn"`
	JobLocation           string `json:"JobLocation"`
	Experience            string `json:"experience"`
	EducationRequirements string `json:"EducationRequirements"`
	SkillsRequired        string `json:"SkillsRequired"`
	JobDescription        string `json:"JobDescription"`
	JobSalaryRange        string `json:"JobSalaryRange"`
	AdditionalRequirement string `json:"AdditionJobRequirements"`
}

func (s *Scraper) fetchDetail(ctx context.Context, id string) (*models.Record, error) {
	url := fmt.Sprintf("%s?jobId=%s", s.config.BDJobsGatewayURL, id)

	var resp detailResponse
	if err := s.client.GetJSON(ctx, url, nil, &resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != "0" || len(resp.Data) == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("job %s: gateway status %q", id, resp.StatusCode), nil)
	}

	d := resp.Data[0]
	return &models.Record{
		JobID:                  id,
		Title:                  strings.TrimSpace(d.JobTitle),
		Company:                strings.TrimSpace(d.CompanyName),
		Location:               strings.TrimSpace(d.JobLocation),
		PostedOn:               strings.TrimSpace(d.PostedOn),
		Experience:             scrape.FlattenHTML(d.Experience),
		Education:              scrape.FlattenHTML(d.EducationRequirements),
		Skills:                 strings.TrimSpace(d.SkillsRequired),
		Description:            scrape.FlattenHTML(d.JobDescription),
		SalaryRange:            strings.TrimSpace(d.JobSalaryRange),
		AdditionalRequirements: scrape.FlattenHTML(d.AdditionalRequirement),
		URL:                    fmt.Sprintf("https://jobs.bdjobs.com/jobdetails.asp?id=%s", id),
		Source:                 s.Source(),
		Country:                s.Country(),
	}, nil
}
