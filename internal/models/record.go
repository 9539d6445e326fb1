package models

import (
	"encoding/json"
	"strings"
)

// Record is one job posting in the unified dataset schema. All fields hold
// the scraped text as-is; PostedOn, Region and SalaryUSDAnnual are rewritten
// by the merge step.
type Record struct {
	JobID                  string `json:"job_id"`
	Title                  string `json:"title"`
	Company                string `json:"company"`
	Location               string `json:"location"`
	PostedOn               string `json:"posted_on"`
	Experience             string `json:"experience"`
	Education              string `json:"education"`
	Skills                 string `json:"skills"`
	Description            string `json:"description"`
	SalaryRange            string `json:"salary_range"`
	AdditionalRequirements string `json:"additional_requirements"`
	URL                    string `json:"url"`
	Source                 string `json:"source"`
	Country                string `json:"country"`

	Region          string `json:"region,omitempty"`
	SalaryUSDAnnual string `json:"salary_usd_annual,omitempty"`
}

// DedupKey is the composite identity used when merging sources. Two rows with
// the same title, company, posting date and location are the same job.
func (r Record) DedupKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.Title)),
		strings.ToLower(strings.TrimSpace(r.Company)),
		strings.TrimSpace(r.PostedOn),
		strings.ToLower(strings.TrimSpace(r.Location)),
	}, "\x1f")
}

func (r Record) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Record) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
