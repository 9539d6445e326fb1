package dataset

import "jobsweep/internal/models"

// Column names of the published TSV schema. Master files carry the first
// fourteen; the merged dataset appends Region and Salary_USD_Annual.
const (
	ColJobID       = "Job ID"
	ColTitle       = "Job Title"
	ColCompany     = "Company Name"
	ColLocation    = "Location"
	ColPostedOn    = "Posted On"
	ColExperience  = "Experience"
	ColEducation   = "Education Requirements"
	ColSkills      = "Skills Required"
	ColDescription = "Job Description"
	ColSalaryRange = "Salary Range"
	ColAdditional  = "Additional Requirements"
	ColURL         = "Job Link"
	ColSource      = "Source"
	ColCountry     = "Country"
	ColRegion      = "Region"
	ColSalaryUSD   = "Salary_USD_Annual"
)

var MasterColumns = []string{
	ColJobID, ColTitle, ColCompany, ColLocation, ColPostedOn,
	ColExperience, ColEducation, ColSkills, ColDescription,
	ColSalaryRange, ColAdditional, ColURL, ColSource, ColCountry,
}

var MergedColumns = append(append([]string{}, MasterColumns...), ColRegion, ColSalaryUSD)

// columnAliases maps header spellings used by older per-source exports onto
// the unified schema.
var columnAliases = map[string]string{
	"City":                    ColLocation,
	"Job Description Snippet": ColDescription,
	"Experience Required":     ColExperience,
}

func cellFor(rec models.Record, column string) string {
	switch column {
	case ColJobID:
		return rec.JobID
	case ColTitle:
		return rec.Title
	case ColCompany:
		return rec.Company
	case ColLocation:
		return rec.Location
	case ColPostedOn:
		return rec.PostedOn
	case ColExperience:
		return rec.Experience
	case ColEducation:
		return rec.Education
	case ColSkills:
		return rec.Skills
	case ColDescription:
		return rec.Description
	case ColSalaryRange:
		return rec.SalaryRange
	case ColAdditional:
		return rec.AdditionalRequirements
	case ColURL:
		return rec.URL
	case ColSource:
		return rec.Source
	case ColCountry:
		return rec.Country
	case ColRegion:
		return rec.Region
	case ColSalaryUSD:
		return rec.SalaryUSDAnnual
	}
	return ""
}

func setCell(rec *models.Record, column, value string) {
	switch column {
	case ColJobID:
		rec.JobID = value
	case ColTitle:
		rec.Title = value
	case ColCompany:
		rec.Company = value
	case ColLocation:
		rec.Location = value
	case ColPostedOn:
		rec.PostedOn = value
	case ColExperience:
		rec.Experience = value
	case ColEducation:
		rec.Education = value
	case ColSkills:
		rec.Skills = value
	case ColDescription:
		rec.Description = value
	case ColSalaryRange:
		rec.SalaryRange = value
	case ColAdditional:
		rec.AdditionalRequirements = value
	case ColURL:
		rec.URL = value
	case ColSource:
		rec.Source = value
	case ColCountry:
		rec.Country = value
	case ColRegion:
		rec.Region = value
	case ColSalaryUSD:
		rec.SalaryUSDAnnual = value
	}
}
