package rules

import (
	"regexp"
	"strings"
)

var (
	reFamilyBackground = regexp.MustCompile(`(?i)(?:Family Details|Family Background)\s*:\s*(.*)`)
	reFamilyLocation   = regexp.MustCompile(`(?i)(?:Family residing in|Family residing at)\s*[:\-]?\s*(.*)`)
	reLabelArtifact    = regexp.MustCompile(`(?i)^(?:Name|Occupation|Job)\s*:\s*`)
	reAnyDigit         = regexp.MustCompile(`\d`)

	familyNameRes = map[string][2]*regexp.Regexp{
		"Father":  {regexp.MustCompile(`(?i)(?:Father Name|Father's Name)\s*:\s*(.*)`), regexp.MustCompile(`(?i)Father\s*:\s*(.*)`)},
		"Mother":  {regexp.MustCompile(`(?i)(?:Mother Name|Mother's Name)\s*:\s*(.*)`), regexp.MustCompile(`(?i)Mother\s*:\s*(.*)`)},
		"Brother": {regexp.MustCompile(`(?i)(?:Brother Name|Brother's Name)\s*:\s*(.*)`), regexp.MustCompile(`(?i)Brother\s*:\s*(.*)`)},
		"Sister":  {regexp.MustCompile(`(?i)(?:Sister Name|Sister's Name)\s*:\s*(.*)`), regexp.MustCompile(`(?i)Sister\s*:\s*(.*)`)},
	}
	familyOccupationRes = map[string]*regexp.Regexp{
		"Father":  regexp.MustCompile(`(?i)(?:Father Occupation|Father's Occupation|Father Job)\s*:\s*(.*)`),
		"Mother":  regexp.MustCompile(`(?i)(?:Mother Occupation|Mother's Occupation|Mother Job)\s*:\s*(.*)`),
		"Brother": regexp.MustCompile(`(?i)(?:Brother Occupation|Brother's Occupation|Brother Job)\s*:\s*(.*)`),
		"Sister":  regexp.MustCompile(`(?i)(?:Sister Occupation|Sister's Occupation|Sister Job)\s*:\s*(.*)`),
	}

	// Implicit occupation sentences, e.g. "Father is a retired banker".
	reImplicitFather = regexp.MustCompile(`(?i)Father(?:'s)?\s+(?:is\s+)?([^,;.\n]+)`)
	reImplicitMother = regexp.MustCompile(`(?i)Mother(?:'s)?\s+(?:is\s+)?([^,;.\n]+)`)

	reMsTitle = regexp.MustCompile(`(?i)^ms\.?\s`)
)

// ExtractFamilyDetails assembles "Label: value" lines for family members
// in a fixed order. Explicit labeled matches win; an implicit occupation
// sentence is used only when no labeled occupation matched, and only when
// the captured phrase carries no digits (phone and ID numbers otherwise
// masquerade as occupations).
func ExtractFamilyDetails(text string) string {
	var lines []string

	add := func(label string, re *regexp.Regexp) bool {
		val := firstGroup(re, text)
		if val == "" {
			return false
		}
		// generic "Father:" style labels sometimes swallow a nested key
		val = strings.TrimSpace(reLabelArtifact.ReplaceAllString(val, ""))
		if val == "" {
			return false
		}
		lines = append(lines, label+": "+val)
		return true
	}
	has := func(prefix string) bool {
		for _, l := range lines {
			if strings.HasPrefix(l, prefix) {
				return true
			}
		}
		return false
	}

	add("Family Details", reFamilyBackground)

	for _, member := range []string{"Father", "Mother", "Brother", "Sister"} {
		res := familyNameRes[member]
		if !add(member+" Name", res[0]) {
			add(member+" Name", res[1])
		}
		add(member+" Occupation", familyOccupationRes[member])

		if member == "Father" && !has("Father Occupation") {
			if v := implicitOccupation(reImplicitFather, text, fatherTitle); v != "" {
				lines = append(lines, "Father Occupation: "+v)
			}
		}
		if member == "Mother" && !has("Mother Occupation") {
			if v := implicitOccupation(reImplicitMother, text, motherTitle); v != "" {
				lines = append(lines, "Mother Occupation: "+v)
			}
		}
	}

	add("Family Location", reFamilyLocation)

	return strings.Join(lines, "\n")
}

// implicitOccupation captures the phrase after "Father is ..." style
// sentences, rejecting labeled lines, honorific titles, and any capture
// containing digits. Every match is scanned: a "Father Name:" line
// earlier in the text must not hide a real occupation sentence below it.
func implicitOccupation(re *regexp.Regexp, text string, isTitle func(string) bool) string {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		lower := strings.ToLower(v)
		if strings.HasPrefix(lower, "name") || strings.HasPrefix(v, ":") {
			continue
		}
		if isTitle(v) {
			continue
		}
		if reAnyDigit.MatchString(v) {
			continue
		}
		return v
	}
	return ""
}

func fatherTitle(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "mr") || strings.HasPrefix(lower, "sri ")
}

func motherTitle(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "mrs") || strings.HasPrefix(lower, "smt") || reMsTitle.MatchString(v)
}
