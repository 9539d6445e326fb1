package jobstreet

import (
	"html"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// sections is the posting body split into the dataset's text columns.
type sections struct {
	Description  string
	Requirements string
	Skills       string
	Education    string
	Experience   string
}

var (
	blockPattern  = regexp.MustCompile(`(?is)<(h[1-3]|p|li)[^>]*>(.*?)</\s*(?:h[1-3]|p|li)\s*>`)
	strongPattern = regexp.MustCompile(`(?is)<(?:strong|b)[^>]*>`)
	stripPattern  = regexp.MustCompile(`(?is)<(?:style|script)[^>]*>.*?</(?:style|script)>`)
	innerTags     = regexp.MustCompile(`<[^>]+>`)
	innerSpaces   = regexp.MustCompile(`\s+`)

	descriptionHeads  = regexp.MustCompile(`job description|responsibilities|duties|role`)
	requirementsHeads = regexp.MustCompile(`requirements|requisite|what you bring`)
	skillsHeads       = regexp.MustCompile(`skills|competencies|knowledge`)
	educationHeads    = regexp.MustCompile(`qualifications|education`)
	experienceHeads   = regexp.MustCompile(`experience`)
)

// parseContent walks the posting HTML block by block. Headings (and bold or
// colon-terminated paragraphs) switch the current bucket; everything else
// accumulates under the bucket in effect. Unrecognised headings fall back to
// the description.
func parseContent(content string) sections {
	if content == "" {
		return sections{}
	}

	content = stripPattern.ReplaceAllString(content, "")

	buckets := map[string][]string{}
	current := "description"
	seen := mapset.NewSet[string]()

	for _, match := range blockPattern.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(match[1])
		raw := match[2]
		text := innerSpaces.ReplaceAllString(innerTags.ReplaceAllString(raw, " "), " ")
		text = strings.TrimSpace(html.UnescapeString(text))
		if text == "" {
			continue
		}

		isHeading := strings.HasPrefix(tag, "h") ||
			(tag == "p" && (strongPattern.MatchString(raw) || strings.HasSuffix(text, ":")))

		if isHeading {
			current = bucketFor(strings.TrimSuffix(text, ":"))
			continue
		}

		if seen.Add(text) {
			buckets[current] = append(buckets[current], text)
		}
	}

	join := func(key string) string { return strings.Join(buckets[key], "; ") }
	return sections{
		Description:  join("description"),
		Requirements: join("requirements"),
		Skills:       join("skills"),
		Education:    join("education"),
		Experience:   join("experience"),
	}
}

func bucketFor(heading string) string {
	h := strings.ToLower(strings.TrimSpace(heading))
	switch {
	case descriptionHeads.MatchString(h):
		return "description"
	case requirementsHeads.MatchString(h):
		return "requirements"
	case skillsHeads.MatchString(h):
		return "skills"
	case educationHeads.MatchString(h):
		return "education"
	case experienceHeads.MatchString(h):
		return "experience"
	default:
		return "description"
	}
}
