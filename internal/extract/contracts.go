package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

// CorrectionExample is a prior human-corrected (raw text, fields) pair.
// The append-only correction log feeds these back as few-shot context on
// later extractions; that is the pipeline's only learning mechanism.
type CorrectionExample struct {
	RawText   string
	Corrected constants.BiodataFields
	CreatedAt time.Time
}

// FieldExtractor turns sanitized biodata text into the closed-vocabulary
// record. Implementations may fail (network, malformed model output);
// callers are expected to hold a fallback. The raw bytes are the
// strategy's unparsed output, kept for audit.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string, examples []CorrectionExample) (constants.BiodataFields, []byte, error)

	// Source identifies the strategy for preview provenance.
	Source() constants.ExtractionSource
}
