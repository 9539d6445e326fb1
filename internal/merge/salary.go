package merge

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Local-currency-per-USD conversion rates, matching the dataset's
// publication snapshot.
var exchangeRates = map[string]float64{
	"India":       0.012,
	"Bangladesh":  0.0085,
	"Pakistan":    0.0036,
	"Singapore":   0.74,
	"Indonesia":   0.000064,
	"Philippines": 0.018,
}

var (
	numberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

	// Phrases that mean the posting discloses no figure at all.
	undisclosedPhrases = []string{"not disclosed", "negotiable", "confidential", "competitive"}
)

// ParseLocalAmount extracts a single representative amount from a free-text
// salary range. Ranges are averaged. South Asian postings routinely quote in
// lakh and crore; a bare small number with no unit word is treated as noise
// (years of experience, calendar years) rather than a salary.
func ParseLocalAmount(salary string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(salary))
	if text == "" {
		return 0, false
	}

	for _, phrase := range undisclosedPhrases {
		if strings.Contains(text, phrase) {
			return 0, false
		}
	}

	text = strings.ReplaceAll(text, ",", "")

	multiplier := 1.0
	switch {
	case strings.Contains(text, "crore") || strings.Contains(text, "cr"):
		multiplier = 1e7
	case strings.Contains(text, "lacs") || strings.Contains(text, "lakh") || strings.Contains(text, "lpa"):
		multiplier = 1e5
	case strings.Contains(text, "k ") || strings.HasSuffix(text, "k"):
		multiplier = 1e3
	}

	matches := numberPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var sum float64
	for _, m := range matches {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		sum += n
	}
	avg := sum / float64(len(matches))

	if multiplier == 1.0 && avg < 100 {
		return 0, false
	}

	return avg * multiplier, true
}

// SalaryUSDAnnual converts a raw salary range to an annualized USD figure.
// Naukri and Indian postings quote yearly; every other source quotes monthly.
func SalaryUSDAnnual(salary, country, source string) (float64, bool) {
	amount, ok := ParseLocalAmount(salary)
	if !ok || amount == 0 {
		return 0, false
	}

	rate, ok := exchangeRates[country]
	if !ok {
		return 0, false
	}
	usd := amount * rate

	if source != "Naukri" && country != "India" {
		usd *= 12
	}

	return round2(usd), true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
