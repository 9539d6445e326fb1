package scrape

import (
	"html"
	"regexp"
	"strings"
)

var (
	itemBreakPattern = regexp.MustCompile(`(?i)</(?:li|p|div|h[1-6]|tr)>|<br\s*/?>`)
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// FlattenHTML turns an HTML fragment into a single line, joining list items
// and paragraphs with "; ". Job boards ship requirements as <li> soup.
func FlattenHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	s := itemBreakPattern.ReplaceAllString(fragment, "\x00")
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	var parts []string
	for _, part := range strings.Split(s, "\x00") {
		part = spacePattern.ReplaceAllString(part, " ")
		part = strings.Trim(part, " ;:-")
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, "; ")
}
