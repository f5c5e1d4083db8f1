// Package rules is the deterministic fallback extractor: a sequence of
// independent regex/heuristic extractions over sanitized biodata text.
// It never fails; a sub-extraction that finds nothing yields an empty
// string for its field. Each field family lives behind its own named
// function so the heuristics stay independently testable.
package rules

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
)

// Labels anchor at line start so "Father Name:" cannot feed name, nor
// "Marital Status:" feed citizenship.
var (
	reName          = regexp.MustCompile(`(?im)^Name\s*:\s*(.*)`)
	reHeight        = regexp.MustCompile(`(?im)^Height\s*:\s*(.*)`)
	reMaritalStatus = regexp.MustCompile(`(?im)^Marital\s*Status\s*:\s*(.*)`)
	reReligion      = regexp.MustCompile(`(?im)^Religion\s*:\s*(.*)`)
	reCaste         = regexp.MustCompile(`(?im)^Caste\s*:\s*(.*)`)
	reSubcaste      = regexp.MustCompile(`(?im)^(?:Subcaste|Sub-caste)\s*:\s*(.*)`)
	reMotherTongue  = regexp.MustCompile(`(?im)^Mother\s*Tongue\s*:\s*(.*)`)
	reAgeLabel      = regexp.MustCompile(`(?i)Age\s*:\s*(\d+)`)
	rePhone         = regexp.MustCompile(`(?i)(?:Contact|Mobile|Phone)(?:\s*number)?\s*[:\-]?\s*([\d\-\+\(\)\s]{7,})`)
	reCitizenship   = regexp.MustCompile(`(?im)^(?:Status|Immigration\s*Status|Citizenship)\s*[:\-]?\s*(.*)`)
	reCompany       = regexp.MustCompile(`(?im)^Company\s*:\s*(.*)`)
	reUSACitizen    = regexp.MustCompile(`(?i)^(?:USA|US|United States)$`)
)

// Extractor implements extract.FieldExtractor with no external calls.
// Now is injectable so age computation is testable; nil means time.Now.
type Extractor struct {
	Logger *slog.Logger
	Now    func() time.Time
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{Logger: logger, Now: time.Now}
}

// Source identifies this strategy in preview provenance.
func (e *Extractor) Source() constants.ExtractionSource {
	return constants.ExtractionSourceRules
}

// ExtractFields runs every heuristic over the sanitized text. The few-shot
// examples are accepted for interface compatibility and ignored; this
// strategy does not learn. The returned raw bytes are the marshaled record.
func (e *Extractor) ExtractFields(_ context.Context, text string, _ []extract.CorrectionExample) (constants.BiodataFields, []byte, error) {
	var now time.Time
	if e.Now != nil {
		now = e.Now()
	} else {
		now = time.Now()
	}

	var f constants.BiodataFields

	f.DOB, f.Age = ExtractDOB(text, now)
	if f.Age == "" {
		f.Age = firstGroup(reAgeLabel, text)
	}

	f.LocationCity, f.LocationState, f.LocationCountry = ExtractLocation(text)
	f.LookingFor = ExtractLookingFor(text)
	f.FamilyDetails = ExtractFamilyDetails(text)
	f.PartnerPreferences = ExtractPartnerPreferences(text)
	f.Income = ExtractIncome(text)

	f.Education = ExtractMultiLine(text, `(?:Education|Qualification)`, "\n")
	occupation := ExtractMultiLine(text, `(?:Occupation|Job|Profession|Work(?:ing\s+as)?)`, "; ")
	f.Company = firstGroup(reCompany, text)

	if f.Income == "" && occupation != "" {
		f.Income = incomeFromOccupation(occupation)
	}

	var city, state string
	f.Occupation, f.Company, city, state = SplitOccupation(occupation, f.Company)
	if f.LocationCity == "" && city != "" {
		f.LocationCity = city
		if f.LocationState == "" {
			f.LocationState = state
		}
	}

	f.Name = firstGroup(reName, text)
	f.Height = firstGroup(reHeight, text)
	f.MaritalStatus = firstGroup(reMaritalStatus, text)
	f.Religion = firstGroup(reReligion, text)
	f.Caste = firstGroup(reCaste, text)
	f.Subcaste = firstGroup(reSubcaste, text)
	f.MotherTongue = firstGroup(reMotherTongue, text)
	f.Phone = strings.TrimSpace(firstGroup(rePhone, text))
	f.Citizenship = normalizeCitizenship(firstGroup(reCitizenship, text))
	f.Bio = text

	raw, err := json.Marshal(&f)
	if err != nil {
		// marshal of a flat string struct cannot realistically fail;
		// degrade to an empty payload rather than surface an error
		raw = []byte("{}")
	}

	e.Logger.Debug("rules.extract.ok",
		"name", f.Name,
		"dob", f.DOB,
		"looking_for", f.LookingFor,
	)
	return f, raw, nil
}

// firstGroup returns the trimmed first capture group of the first match.
func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// normalizeCitizenship maps bare country mentions to the canonical label.
func normalizeCitizenship(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if reUSACitizen.MatchString(v) {
		return "US Citizen"
	}
	return v
}
