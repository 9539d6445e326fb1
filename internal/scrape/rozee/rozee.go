// Package rozee scrapes rozee.pk. The search pages embed the full result
// payload as a JavaScript literal (`var apResp = {...};`), so one HTML
// fetch per page yields complete postings with no detail round-trips.
package rozee

import (
	"context"
	"encoding/json"
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

const pageStep = 20

var payloadPattern = regexp.MustCompile(`(?s)var\s+apResp\s*=\s*(\{.*?\});`)

type Scraper struct {
	client *scrape.Client
	logger *zap.Logger
	config *config.Config
}

func New(config *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: scrape.NewClient(config.RequestTimeout, config.MaxRetries, config.RetryDelay),
		logger: logger.With(zap.String("scraper", "rozee")),
		config: config,
	}
}

func (s *Scraper) Name() string    { return "Rozee.pk" }
func (s *Scraper) Source() string  { return "Rozee" }
func (s *Scraper) Country() string { return "Pakistan" }

type payload struct {
	Response struct {
		Jobs struct {
			Sponsored []job `json:"sponsored"`
			Basic     []job `json:"basic"`
		} `json:"jobs"`
		TotalJobs json.Number `json:"total_jobs"`
	} `json:"response"`
}

type job struct {
	JID            json.Number `json:"jid"`
	Title          string      `json:"title"`
	CompanyName    string      `json:"company_name"`
	DisplayDate    string      `json:"displayDate"`
	City           string      `json:"city"`
	ExperienceText string      `json:"experience_text"`
	Skills         []string    `json:"skills"`
	Description    string      `json:"description"`
	SalaryMin      json.Number `json:"salaryN_exact"`
	SalaryMax      json.Number `json:"salaryT_exact"`
	PermaLink      string      `json:"rozeePermaLink"`
}

func (s *Scraper) Fetch(ctx context.Context, known mapset.Set[string]) (scrape.Result, error) {
	ctx, span := telemetry.GetTracer("scrape.rozee").Start(ctx, "rozee.fetch")
	defer span.End()

	var result scrape.Result
	seen := mapset.NewSet[string]()

	for offset := 0; len(result.Records) < s.config.NewJobTarget; offset += pageStep {
		url := s.config.RozeeSearchURL
		if offset > 0 {
			url = fmt.Sprintf("%s/fpn/%d", url, offset)
		}

		body, err := s.client.GetBody(ctx, url, nil)
		if err != nil {
			if offset == 0 {
				return result, err
			}
			result.Issues = append(result.Issues,
				fmt.Sprintf("Rozee.pk: page at offset %d failed: %v", offset, err))
			break
		}

		jobs, err := parsePayload(body)
		if err != nil {
			if offset == 0 {
				return result, err
			}
			result.Issues = append(result.Issues,
				fmt.Sprintf("Rozee.pk: page at offset %d unparseable: %v", offset, err))
			break
		}
		if len(jobs) == 0 {
			break
		}

		var added int
		for _, j := range jobs {
			id := j.JID.String()
			if id == "" || known.Contains(id) || !seen.Add(id) {
				continue
			}
			result.Records = append(result.Records, j.toRecord())
			added++
			if len(result.Records) >= s.config.NewJobTarget {
				break
			}
		}
		if added == 0 {
			// A whole page of already-known jobs means we caught up.
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(s.config.RequestDelay):
		}
	}

	span.SetAttributes(telemetry.Int("records", len(result.Records)))
	return result, nil
}

func parsePayload(page []byte) ([]job, error) {
	match := payloadPattern.FindSubmatch(page)
	if match == nil {
		return nil, apperrors.Parse("apResp payload not found in page", nil)
	}

	var p payload
	if err := json.Unmarshal(match[1], &p); err != nil {
		return nil, apperrors.Parse("decoding apResp payload", err)
	}

	return append(p.Response.Jobs.Sponsored, p.Response.Jobs.Basic...), nil
}

func (j job) toRecord() models.Record {
	salary := ""
	min, max := j.SalaryMin.String(), j.SalaryMax.String()
	if min != "" && min != "0" && max != "" && max != "0" {
		salary = min + " - " + max
	}

	url := j.PermaLink
	if url != "" && !strings.HasPrefix(url, "http") {
		url = "https://www.rozee.pk/" + strings.TrimPrefix(url, "/")
	}

	return models.Record{
		JobID:       j.JID.String(),
		Title:       strings.TrimSpace(j.Title),
		Company:     strings.TrimSpace(j.CompanyName),
		Location:    strings.TrimSpace(j.City),
		PostedOn:    strings.TrimSpace(j.DisplayDate),
		Experience:  strings.TrimSpace(j.ExperienceText),
		Skills:      strings.Join(j.Skills, ", "),
		Description: scrape.FlattenHTML(j.Description),
		SalaryRange: salary,
		URL:         url,
		Source:      "Rozee",
		Country:     "Pakistan",
	}
}
