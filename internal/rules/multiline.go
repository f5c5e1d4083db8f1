package rules

import (
	"regexp"
	"strings"
	"sync"
)

// stopWords is the fixed field-label vocabulary that terminates multi-line
// captures. This makes the capture a heuristic segmenter, not a grammar:
// adjacent unlabeled free text can be swallowed or cut short.
var stopWords = []string{
	"Name", "DOB", "Date", "Born", "Age", "Height", "Religion", "Caste",
	"Subcaste", "Sub-caste", "Education", "Occupation", "Job", "Profession", "Work",
	"Current", "Location", "Place", "Residing", "Address", "City",
	"Family", "Father", "Mother", "Brother", "Sister",
	"Status", "Immigration", "Citizenship", "Looking", "Dietary", "Contact", "Company", "Income", "Salary", "Package", "Ctc",
}

var reStopLine = regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(stopWords, "|") + `)`)

var multiLineCache sync.Map // keyPattern -> *regexp.Regexp

// ExtractMultiLine captures a labeled field from its start marker up to
// the next recognized field keyword or end of text. Lines are joined with
// separator ("\n" keeps education multi-line, "; " flattens occupation).
func ExtractMultiLine(text, keyPattern, separator string) string {
	re := compileMultiLine(keyPattern)
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[2]:]
	lines := strings.Split(rest, "\n")
	captured := []string{lines[0]}
	for _, line := range lines[1:] {
		if reStopLine.MatchString(line) {
			break
		}
		captured = append(captured, line)
	}

	for i, l := range captured {
		captured[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(captured, separator))
}

func compileMultiLine(keyPattern string) *regexp.Regexp {
	if v, ok := multiLineCache.Load(keyPattern); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)` + keyPattern + `\s*[:;\-]?\s*(.*)`)
	multiLineCache.Store(keyPattern, re)
	return re
}
