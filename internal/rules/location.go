package rules

import (
	"regexp"
	"strings"
)

var (
	reLocationLabel = regexp.MustCompile(`(?i)(?:Current\s*Location|Location|Place|Residing\s*at|Address|City)\s*:\s*(.*)`)
	reTrailingZip   = regexp.MustCompile(`\s+\d+.*$`)
)

// ExtractLocation parses a labeled free-text location line, split on
// commas into up to three parts. Trailing zip codes are stripped from the
// state part. Fewer parts fill city, then state; country needs all three.
func ExtractLocation(text string) (city, state, country string) {
	raw := firstGroup(reLocationLabel, text)
	if raw == "" {
		return "", "", ""
	}

	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	switch {
	case len(parts) >= 3:
		city = parts[0]
		state = strings.TrimSpace(reTrailingZip.ReplaceAllString(parts[1], ""))
		country = parts[2]
	case len(parts) == 2:
		city = parts[0]
		state = strings.TrimSpace(reTrailingZip.ReplaceAllString(parts[1], ""))
	default:
		city = parts[0]
	}
	return city, state, country
}
