// Package naukri scrapes naukri.com through its public search and detail
// JSON APIs. The APIs want the headers the web frontend sends, including a
// rotating request token; a baked-in fallback token is used when none is
// configured.
package naukri

import (
	"context"
	"fmt"
	"net/url"
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

const (
	searchPageSize = 20

	// Token sniffed from the web frontend. Works until Naukri rotates it;
	// override with NAUKRI_TOKEN when it does.
	fallbackToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"
)

type Scraper struct {
	client *scrape.Client
	logger *zap.Logger
	config *config.Config
}

func New(config *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: scrape.NewClient(config.RequestTimeout, config.MaxRetries, config.RetryDelay),
		logger: logger.With(zap.String("scraper", "naukri")),
		config: config,
	}
}

func (s *Scraper) Name() string    { return "Noukri.com" }
func (s *Scraper) Source() string  { return "Naukri" }
func (s *Scraper) Country() string { return "India" }

func (s *Scraper) headers() map[string]string {
	token := s.config.NaukriToken
	if token == "" {
		token = fallbackToken
	}
	return map[string]string{
		"appid":    "109",
		"systemid": "Naukri",
		"clientid": "d3skt0p",
		"gid":      "LOCATION,INDUSTRY,EDUCATION,FAREA_ROLE",
		"nkparam":  token,
		"Accept":   "application/json",
	}
}

func (s *Scraper) Fetch(ctx context.Context, known mapset.Set[string]) (scrape.Result, error) {
	ctx, span := telemetry.GetTracer("scrape.naukri").Start(ctx, "naukri.fetch")
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
			fmt.Sprintf("Noukri.com: %d of %d job details could not be fetched", failed, len(newIDs)))
	}

	result.Records = records
	span.SetAttributes(telemetry.Int("records", len(records)))
	return result, nil
}

type searchResponse struct {
	NoOfJobs   int `json:"noOfJobs"`
	JobDetails []struct {
		JobID string `json:"jobId"`
	} `json:"jobDetails"`
}

func (s *Scraper) collectNewIDs(ctx context.Context, known mapset.Set[string]) ([]string, []string, error) {
	var (
		ids    []string
		issues []string
		seen   = mapset.NewSet[string]()
		total  = -1
	)

	for page := 1; ; page++ {
		if len(ids) >= s.config.NewJobTarget {
			break
		}
		if total >= 0 && (page-1)*searchPageSize >= total {
			break
		}

		query := url.Values{}
		query.Set("noOfResults", fmt.Sprint(searchPageSize))
		query.Set("urlType", "search_by_keyword")
		query.Set("searchType", "adv")
		query.Set("keyword", s.config.NaukriKeyword)
		query.Set("pageNo", fmt.Sprint(page))
		query.Set("seoKey", s.config.NaukriSEOKey)
		query.Set("src", "jobsearchDesk")

		var resp searchResponse
		err := s.client.GetJSON(ctx, s.config.NaukriSearchURL+"?"+query.Encode(), s.headers(), &resp)
		if err != nil {
			if page == 1 {
				return nil, issues, err
			}
			issues = append(issues, fmt.Sprintf("Noukri.com: search page %d failed: %v", page, err))
			break
		}

		total = resp.NoOfJobs
		if len(resp.JobDetails) == 0 {
			break
		}

		for _, job := range resp.JobDetails {
			if job.JobID == "" || known.Contains(job.JobID) || !seen.Add(job.JobID) {
				continue
			}
			ids = append(ids, job.JobID)
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

type detailResponse struct {
	JobDetails *struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		StaticURL     string `json:"staticUrl"`
		CreatedDate   int64  `json:"createdDate"`
		CompanyDetail struct {
			Name string `json:"name"`
		} `json:"companyDetail"`
		Locations []struct {
			Label string `json:"label"`
		} `json:"locations"`
		SalaryDetail struct {
			Label string `json:"label"`
		} `json:"salaryDetail"`
		ExperienceText string `json:"experienceText"`
		Education      struct {
			UG []struct {
				Label string `json:"label"`
			} `json:"ug"`
			PG []struct {
				Label string `json:"label"`
			} `json:"pg"`
		} `json:"education"`
		KeySkills struct {
			Preferred []struct {
				Label string `json:"label"`
			} `json:"preferred"`
			Other []struct {
				Label string `json:"label"`
			} `json:"other"`
		} `json:"keySkills"`
	} `json:"jobDetails"`
}

func (s *Scraper) fetchDetail(ctx context.Context, id string) (*models.Record, error) {
	var resp detailResponse
	if err := s.client.GetJSON(ctx, s.config.NaukriDetailURL+"/"+id, s.headers(), &resp); err != nil {
		return nil, err
	}
	if resp.JobDetails == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("job %s: empty detail payload", id), nil)
	}

	d := resp.JobDetails

	var locations []string
	for _, loc := range d.Locations {
		if loc.Label != "" {
			locations = append(locations, loc.Label)
		}
	}

	var skills []string
	for _, sk := range d.KeySkills.Preferred {
		if sk.Label != "" {
			skills = append(skills, sk.Label)
		}
	}
	for _, sk := range d.KeySkills.Other {
		if sk.Label != "" {
			skills = append(skills, sk.Label)
		}
	}

	var education []string
	for _, ed := range d.Education.UG {
		if ed.Label != "" {
			education = append(education, ed.Label)
		}
	}
	for _, ed := range d.Education.PG {
		if ed.Label != "" {
			education = append(education, ed.Label)
		}
	}

	postedOn := ""
	if d.CreatedDate > 0 {
		postedOn = time.UnixMilli(d.CreatedDate).UTC().Format("2006-01-02 15:04:05")
	}

	jobURL := d.StaticURL
	if jobURL != "" && !strings.HasPrefix(jobURL, "http") {
		jobURL = "https://www.naukri.com/" + strings.TrimPrefix(jobURL, "/")
	}

	return &models.Record{
		JobID:       id,
		Title:       strings.TrimSpace(d.Title),
		Company:     strings.TrimSpace(d.CompanyDetail.Name),
		Location:    strings.Join(locations, ", "),
		PostedOn:    postedOn,
		Experience:  strings.TrimSpace(d.ExperienceText),
		Education:   strings.Join(education, "; "),
		Skills:      strings.Join(skills, ", "),
		Description: scrape.FlattenHTML(d.Description),
		SalaryRange: strings.TrimSpace(d.SalaryDetail.Label),
		URL:         jobURL,
		Source:      s.Source(),
		Country:     s.Country(),
	}, nil
}
