package rules

import (
	"regexp"
	"strings"
)

var (
	reAtEmployer   = regexp.MustCompile(`(?i)^(.*?)\s+(?:at|in|@|with)\s+(.*)$`)
	reLongZip      = regexp.MustCompile(`\s+\d{5,}.*$`)
	reStateCode    = regexp.MustCompile(`\b([A-Z]{2})\b`)
	reCityState    = regexp.MustCompile(`^(.*)\s+([A-Z]{2})$`)
	reTrailingCity = regexp.MustCompile(`(?i)\b(?:in|at)\s+([^,;]+)$`)
	reCompanyForm  = regexp.MustCompile(`(?i)limited|pvt|ltd|inc|corp|llc`)
)

// SplitOccupation disambiguates strings like
// "Business Analyst in Gilead Sciences, Foster City CA": the part before
// at/in/@/with is the title, the first comma part after it the employer,
// and the trailing comma parts a candidate city/state (a bare two-letter
// uppercase token is read as a state code). When no employer split
// matches, a trailing "in <place>" or final comma part may still yield a
// city. The caller decides whether the recovered location is used; a
// labeled location line always wins.
func SplitOccupation(occupation, company string) (title, employer, city, state string) {
	title, employer = occupation, company
	if occupation == "" || company != "" {
		return title, employer, "", ""
	}

	if m := reAtEmployer.FindStringSubmatch(occupation); m != nil {
		title = strings.TrimSpace(m[1])
		rest := strings.TrimSpace(m[2])

		parts := strings.Split(rest, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		employer = parts[0]

		if len(parts) > 1 {
			cleanLoc := reLongZip.ReplaceAllString(strings.Join(parts[1:], ", "), "")
			if sm := reStateCode.FindStringSubmatch(cleanLoc); sm != nil {
				state = sm[1]
				city = strings.TrimSpace(strings.Replace(cleanLoc, sm[0], "", 1))
			} else {
				city = cleanLoc
			}
		}
		return title, employer, city, state
	}

	// No employer split matched; the occupation may still carry a
	// trailing place ("Software Engineer in Bangalore").
	if m := reTrailingCity.FindStringSubmatch(occupation); m != nil && len(strings.TrimSpace(m[1])) < 30 {
		city = strings.TrimSpace(m[1])
	} else if parts := strings.Split(occupation, ","); len(parts) > 1 {
		last := strings.TrimSpace(parts[len(parts)-1])
		if len(last) < 30 && !reCompanyForm.MatchString(last) {
			city = last
		}
	}

	if city != "" {
		city = strings.TrimSpace(reTrailingZip.ReplaceAllString(city, ""))
		if cm := reCityState.FindStringSubmatch(city); cm != nil {
			city = strings.TrimSpace(cm[1])
			state = cm[2]
		}
	}
	return title, employer, city, state
}
