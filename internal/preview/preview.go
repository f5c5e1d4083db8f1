// Package preview wraps an extracted field record into the review-ready
// structure consumed by the human correction step.
package preview

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

// Metadata carries provenance for a preview: which strategy produced the
// fields, the originating intake, and when.
type Metadata struct {
	Source    constants.ExtractionSource `json:"source"`
	IntakeID  uuid.UUID                  `json:"intake_id"`
	Timestamp time.Time                  `json:"timestamp"`
}

// Profile is the transient review object. It is computed fresh on each
// request and never stored as its own row.
type Profile struct {
	Fields        constants.BiodataFields `json:"fields"`
	MissingFields []string                `json:"missing_fields"`
	// LowConfidenceFields is reserved for future confidence scoring. It
	// is always empty today but must stay in the shape; the review UI
	// depends on its presence.
	LowConfidenceFields []string `json:"low_confidence_fields"`
	Metadata            Metadata `json:"metadata"`
}

// Assemble builds the preview for extracted fields. It never fails:
// missing fields are every vocabulary key whose value is blank.
func Assemble(fields constants.BiodataFields, intakeID uuid.UUID, source constants.ExtractionSource) Profile {
	return AssembleAt(fields, intakeID, source, time.Now().UTC())
}

// AssembleAt is Assemble with an explicit timestamp.
func AssembleAt(fields constants.BiodataFields, intakeID uuid.UUID, source constants.ExtractionSource, at time.Time) Profile {
	return Profile{
		Fields:              fields,
		MissingFields:       MissingFields(fields),
		LowConfidenceFields: []string{},
		Metadata: Metadata{
			Source:    source,
			IntakeID:  intakeID,
			Timestamp: at,
		},
	}
}

// MissingFields returns every vocabulary key whose value is empty or
// whitespace-only, in canonical key order.
func MissingFields(fields constants.BiodataFields) []string {
	missing := make([]string, 0, len(constants.FieldKeys()))
	for _, k := range constants.FieldKeys() {
		v, _ := fields.Get(k)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}
