package naukri

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobsweep/internal/config"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobapi/v3/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "109", r.Header.Get("appid"))
		assert.Equal(t, "Naukri", r.Header.Get("systemid"))
		assert.NotEmpty(t, r.Header.Get("nkparam"))

		if r.URL.Query().Get("pageNo") == "1" {
			fmt.Fprint(w, `{"noOfJobs": 2, "jobDetails": [{"jobId": "n100"}, {"jobId": "n200"}]}`)
			return
		}
		fmt.Fprint(w, `{"noOfJobs": 2, "jobDetails": []}`)
	})
	mux.HandleFunc("/jobapi/v4/job/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/jobapi/v4/job/")
		fmt.Fprintf(w, `{"jobDetails": {
			"title": "Senior Go Developer",
			"description": "<p>Own services end to end.</p>",
			"staticUrl": "job-listings-senior-go-developer-%s",
			"createdDate": 1762128000000,
			"companyDetail": {"name": "TechCorp"},
			"locations": [{"label": "Bengaluru"}, {"label": "Pune"}],
			"salaryDetail": {"label": "15-25 Lacs PA"},
			"experienceText": "5 - 8 years",
			"education": {"ug": [{"label": "B.Tech"}], "pg": [{"label": "M.Tech"}]},
			"keySkills": {"preferred": [{"label": "Go"}], "other": [{"label": "Kafka"}]}
		}}`, id)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := &config.Config{
		RequestTimeout:  5 * time.Second,
		RequestDelay:    time.Millisecond,
		NewJobTarget:    100,
		DetailWorkers:   2,
		MaxRetries:      1,
		RetryDelay:      time.Millisecond,
		NaukriSearchURL: server.URL + "/jobapi/v3/search",
		NaukriDetailURL: server.URL + "/jobapi/v4/job",
		NaukriKeyword:   "indian portal",
		NaukriSEOKey:    "indian-portal-jobs",
	}
	scraper := New(cfg, zap.NewNop())

	known := mapset.NewSet("n200")
	result, err := scraper.Fetch(context.Background(), known)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "n100", rec.JobID)
	assert.Equal(t, "Senior Go Developer", rec.Title)
	assert.Equal(t, "TechCorp", rec.Company)
	assert.Equal(t, "Bengaluru, Pune", rec.Location)
	assert.Equal(t, "2025-11-03 00:00:00", rec.PostedOn)
	assert.Equal(t, "Go, Kafka", rec.Skills)
	assert.Equal(t, "B.Tech; M.Tech", rec.Education)
	assert.Equal(t, "15-25 Lacs PA", rec.SalaryRange)
	assert.Equal(t, "https://www.naukri.com/job-listings-senior-go-developer-n100", rec.URL)
	assert.Equal(t, "Naukri", rec.Source)
	assert.Equal(t, "India", rec.Country)
}

func TestFetchEmptySearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"noOfJobs": 0, "jobDetails": []}`)
	}))
	defer server.Close()

	cfg := &config.Config{
		RequestTimeout:  5 * time.Second,
		RequestDelay:    time.Millisecond,
		NewJobTarget:    100,
		MaxRetries:      1,
		RetryDelay:      time.Millisecond,
		NaukriSearchURL: server.URL,
	}
	scraper := New(cfg, zap.NewNop())

	result, err := scraper.Fetch(context.Background(), mapset.NewSet[string]())
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Issues)
}
