package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
)

// RawIntake is a write-once raw biodata submission. Downstream stages
// reference it by ID for traceability; the row itself never changes after
// creation except for its status.
type RawIntake struct {
	ID          uuid.UUID
	RawText     string
	RawFileURL  string // empty means no file
	Source      constants.IntakeSource
	Status      constants.IntakeStatus
	ContentHash string // sha256 hex of raw text, for dedupe
	CreatedAt   time.Time
}

// NewIntake is the creation request for a RawIntake row.
type NewIntake struct {
	RawText     string
	RawFileURL  string
	Source      constants.IntakeSource
	ContentHash string
}

// StoredProfile is a persisted final profile with its audit trail.
type StoredProfile struct {
	ID          uuid.UUID
	Profile     mapper.FinalProfile
	RawIntakeID uuid.UUID // Nil when the profile was entered manually
	ParsedJSON  []byte    // extractor output kept for audit
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IntakeRepository owns raw_biodata rows.
type IntakeRepository interface {
	Create(ctx context.Context, in *NewIntake) (*RawIntake, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RawIntake, error)
	// FindByHash returns the existing row for a content hash, or
	// common.ErrNotFound; used by batch ingest to dedupe.
	FindByHash(ctx context.Context, hash string) (*RawIntake, error)
	SetStatus(ctx context.Context, id uuid.UUID, status constants.IntakeStatus) error
}

// ExampleRepository owns the append-only correction example log. Rows are
// never mutated or deleted.
type ExampleRepository interface {
	Append(ctx context.Context, rawText string, corrected constants.BiodataFields) error
	// Recent returns the newest n examples, most recent first.
	Recent(ctx context.Context, n int) ([]extract.CorrectionExample, error)
	// FindByRawText returns the newest correction for the exact raw
	// text, or common.ErrNotFound.
	FindByRawText(ctx context.Context, rawText string) (*extract.CorrectionExample, error)
}

// ProfileRepository owns accepted final profiles.
type ProfileRepository interface {
	Insert(ctx context.Context, p *mapper.FinalProfile, rawIntakeID uuid.UUID, parsedJSON []byte) (*StoredProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoredProfile, error)
	List(ctx context.Context, limit int) ([]*StoredProfile, error)
}

// Store bundles the three repositories over one backend.
type Store struct {
	Intakes  IntakeRepository
	Examples ExampleRepository
	Profiles ProfileRepository
}
