package jobstreet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// idString accepts the job id whether the API sends it as a string or a
// number; both show up in the wild.
type idString string

func (s *idString) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("id is neither string nor number: %s", data)
		}
		*s = idString(str)
		return nil
	}
	*s = idString(n.String())
	return nil
}

var relativePattern = regexp.MustCompile(`(\d+)\s*([dhwm])`)

// parseRelativeDate converts the "3d ago" style labels the listing API
// returns into an absolute date. Labels it cannot interpret pass through
// unchanged for the merge step to deal with.
func parseRelativeDate(label string, now time.Time) string {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return ""
	}

	switch {
	case strings.Contains(s, "just now"), strings.Contains(s, "today"):
		return now.Format("2006-01-02")
	case strings.Contains(s, "yesterday"):
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}

	match := relativePattern.FindStringSubmatch(s)
	if match == nil {
		return label
	}

	value, _ := strconv.Atoi(match[1])
	switch match[2] {
	case "h":
		return now.Add(-time.Duration(value) * time.Hour).Format("2006-01-02")
	case "d":
		return now.AddDate(0, 0, -value).Format("2006-01-02")
	case "w":
		return now.AddDate(0, 0, -7*value).Format("2006-01-02")
	}
	// "5m ago" is minutes, not months.
	return now.Format("2006-01-02")
}
