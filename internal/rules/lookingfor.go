package rules

import (
	"regexp"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

// Groom signals: the family is seeking a groom for a daughter/sister.
// Bride signals: seeking a bride for a son/brother.
var (
	reGroomSignal = regexp.MustCompile(`(?i)(?:looking\s+for|seeking|alliance\s+for|match\s+for).*(?:groom|boy|daughter|sister)`)
	reBrideSignal = regexp.MustCompile(`(?i)(?:looking\s+for|seeking|alliance\s+for|match\s+for).*(?:bride|girl|son|brother)`)
)

// ExtractLookingFor scans for seek-phrase keyword co-occurrence. When both
// signals match, the Bride signal wins; this last-match-wins tie-break is
// a known ambiguity carried over deliberately, not a correctness claim.
func ExtractLookingFor(text string) string {
	out := ""
	if reGroomSignal.MatchString(text) {
		out = constants.LookingForGroom
	}
	if reBrideSignal.MatchString(text) {
		out = constants.LookingForBride
	}
	return out
}
