package rules

import (
	"regexp"
	"strings"
)

var (
	reIncomeLabel = regexp.MustCompile(`(?i)(?:Income|Salary|Package|Ctc|Earnings|Pay|Remuneration)\s*[:\-]?\s*(.*)`)
	// bare currency-like tokens, e.g. "100K", "25 LPA", "12,00,000 Per Annum"
	reMoneyToken     = regexp.MustCompile(`(?i)\b(?:\d{1,3}(?:,\d{3})*|\d+)(?:\.\d+)?\s*(?:K|LPA|Lakhs?|Per Annum)\b`)
	reEarningComment = regexp.MustCompile(`(?i)(?:making|earning|drawing)\s+([^\.,;]*\d+[^\.,;]*)`)

	rePrefLookingFor = regexp.MustCompile(`(?i)(?:Looking\s+for)\s*[:\-]?\s*(.*)`)
	rePrefDietary    = regexp.MustCompile(`(?i)(?:Dietary\s+preference)\s*[:\-]?\s*(.*)`)
	rePrefPartner    = regexp.MustCompile(`(?i)(?:Partner\s+Preferences?)\s*[:\-]?\s*(.*)`)
)

// ExtractIncome prefers an explicit label, then falls back to a bare
// currency-like token anywhere in the text. Income buried in occupation
// prose ("making 140K") is handled separately by incomeFromOccupation
// because it only applies when nothing explicit matched.
func ExtractIncome(text string) string {
	if v := firstGroup(reIncomeLabel, text); v != "" {
		return v
	}
	if m := reMoneyToken.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// incomeFromOccupation scans occupation prose for an earnings comment.
func incomeFromOccupation(occupation string) string {
	return firstGroup(reEarningComment, occupation)
}

// ExtractPartnerPreferences gathers the expectation lines into a
// newline-joined block, in a fixed scan order.
func ExtractPartnerPreferences(text string) string {
	var prefs []string
	for _, re := range []*regexp.Regexp{rePrefLookingFor, rePrefDietary, rePrefPartner} {
		if v := firstGroup(re, text); v != "" {
			prefs = append(prefs, v)
		}
	}
	return strings.Join(prefs, "\n")
}
