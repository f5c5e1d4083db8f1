package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reDOBLabel = regexp.MustCompile(`(?i)(?:DOB|Date of Birth|Born)\s*:\s*(.*)`)
	reOrdinal  = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)`)
)

// dobLayouts are tried in order against the label value after ordinal
// suffixes are stripped. Slash dates are read month-first, matching the
// upstream data (US-formatted forwards).
var dobLayouts = []string{
	"2006-01-02",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"1/2/2006",
	"1-2-2006",
	"2006/1/2",
}

// ExtractDOB finds a labeled date of birth and, when it parses, returns it
// as YYYY-MM-DD along with the age in whole years at "today" (one less
// before the birthday). An unparseable value is passed through verbatim
// with no age; absence yields two empty strings.
func ExtractDOB(text string, today time.Time) (dob, age string) {
	raw := firstGroup(reDOBLabel, text)
	if raw == "" {
		return "", ""
	}

	clean := strings.TrimSpace(reOrdinal.ReplaceAllString(raw, "$1"))
	d, ok := parseFlexibleDate(clean)
	if !ok {
		return raw, ""
	}

	dob = d.Format("2006-01-02")
	age = fmt.Sprintf("%d", AgeAt(d, today))
	return dob, age
}

// AgeAt computes whole years between birth and today, subtracting one when
// today's month/day precedes the birth month/day.
func AgeAt(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

func parseFlexibleDate(s string) (time.Time, bool) {
	for _, layout := range dobLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
