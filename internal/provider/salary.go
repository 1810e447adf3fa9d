package provider

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryPattern = regexp.MustCompile(`\$(\d+(?:,\d{3})*(?:\.\d{2})?)([Kk])?\s*-\s*\$(\d+(?:,\d{3})*(?:\.\d{2})?)([Kk])?`)

// parseSalaryText extracts a "$120k - $150k" or "$120,000 - $150,000"
// style band from free text. Returns zeros when no band is present.
func parseSalaryText(text string) (min, max float64) {
	matches := salaryPattern.FindStringSubmatch(text)
	if len(matches) < 5 {
		return 0, 0
	}

	min = parseAmount(matches[1], matches[2] != "")
	max = parseAmount(matches[3], matches[4] != "")
	return min, max
}

func parseAmount(s string, thousands bool) float64 {
	s = strings.ReplaceAll(s, ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if thousands {
		value *= 1000
	}
	return value
}
