// Package pipeline orchestrates the intake flow: submission, sanitize,
// field extraction, preview assembly, and the accept step that turns a
// human-reviewed record into a stored profile.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
	"github.com/joseph-ayodele/biodata-intake/internal/preview"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
	"github.com/joseph-ayodele/biodata-intake/internal/sanitize"
)

// Service runs the intake pipeline end to end over a repository bundle
// and an extraction chain.
type Service struct {
	store        *repository.Store
	chain        *extract.Chain
	fewShotLimit int
	logger       *slog.Logger
}

func NewService(store *repository.Store, chain *extract.Chain, cfg common.PipelineConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	limit := cfg.FewShotLimit
	if limit <= 0 {
		limit = 3
	}
	return &Service{
		store:        store,
		chain:        chain,
		fewShotLimit: limit,
		logger:       logger,
	}
}

// Submission is a raw biodata submission. Text wins over FileURL when
// both are present.
type Submission struct {
	Text    string
	FileURL string
	Source  constants.IntakeSource
}

// Submit persists a raw submission without processing it. Processing is
// a separate call so a batch can be ingested quickly and parsed later.
func (s *Service) Submit(ctx context.Context, sub Submission) (*repository.RawIntake, error) {
	if strings.TrimSpace(sub.Text) == "" && strings.TrimSpace(sub.FileURL) == "" {
		return nil, common.NewAppError("INVALID_INPUT", "either text or a file is required", common.ErrInvalidInput)
	}
	source := sub.Source
	if source == "" {
		source = constants.IntakeSourceWebProcess
	}
	row, err := s.store.Intakes.Create(ctx, &repository.NewIntake{
		RawText:     sub.Text,
		RawFileURL:  sub.FileURL,
		Source:      source,
		ContentHash: ContentHash(sub.Text, sub.FileURL),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("intake.submitted",
		"intake_id", row.ID.String(),
		"source", string(row.Source),
		"has_file", row.RawFileURL != "",
	)
	return row, nil
}

// ContentHash is the dedupe key for a submission: sha256 over the inline
// text, or over the file reference when there is no text. Hashing the
// text alone lets the same biodata arriving under different filenames
// dedupe.
func ContentHash(text, fileURL string) string {
	if t := strings.TrimSpace(text); t != "" {
		h := sha256.Sum256([]byte(t))
		return hex.EncodeToString(h[:])
	}
	h := sha256.Sum256([]byte(strings.TrimSpace(fileURL)))
	return hex.EncodeToString(h[:])
}

// Process runs sanitize and extraction for a pending intake and returns
// the review preview. The intake is marked PROCESSED on success and
// FAILED when no strategy produced fields.
func (s *Service) Process(ctx context.Context, intakeID uuid.UUID) (*preview.Profile, error) {
	start := time.Now()
	ctx = common.WithIntakeID(ctx, intakeID.String())
	log := s.logger.With("intake_id", intakeID.String())

	intake, err := s.store.Intakes.GetByID(ctx, intakeID)
	if err != nil {
		return nil, err
	}

	text, err := s.resolveText(intake)
	if err != nil {
		log.Error("pipeline.text_resolution_failed", "error", err)
		s.markStatus(ctx, log, intakeID, constants.IntakeStatusFailed)
		return nil, err
	}

	sanitized := sanitize.Sanitize(text)
	log.Info("pipeline.sanitized",
		"raw_len", len(text),
		"sanitized_len", len(sanitized),
	)
	if sanitized == "" {
		s.markStatus(ctx, log, intakeID, constants.IntakeStatusFailed)
		return nil, common.NewAppError("EMPTY_TEXT", "no usable text after sanitization", common.ErrInvalidInput)
	}

	fields, _, source, err := s.extract(ctx, log, sanitized)
	if err != nil {
		s.markStatus(ctx, log, intakeID, constants.IntakeStatusFailed)
		return nil, err
	}

	s.markStatus(ctx, log, intakeID, constants.IntakeStatusProcessed)

	p := preview.Assemble(fields, intakeID, source)
	log.Info("pipeline.processed",
		"source", string(source),
		"missing_fields", len(p.MissingFields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &p, nil
}

// ProcessText runs the stateless variant: sanitize and extract without
// any stored intake. Used by the synchronous web form.
func (s *Service) ProcessText(ctx context.Context, text string) (*preview.Profile, error) {
	sanitized := sanitize.Sanitize(text)
	if sanitized == "" {
		return nil, common.NewAppError("EMPTY_TEXT", "no usable text after sanitization", common.ErrInvalidInput)
	}
	fields, _, source, err := s.extract(ctx, s.logger, sanitized)
	if err != nil {
		return nil, err
	}
	p := preview.Assemble(fields, uuid.Nil, source)
	return &p, nil
}

// extract applies the exact-match shortcut against the correction log,
// then falls to the strategy chain with recent corrections as few-shot
// context.
func (s *Service) extract(ctx context.Context, log *slog.Logger, sanitized string) (constants.BiodataFields, []byte, constants.ExtractionSource, error) {
	if ex, err := s.store.Examples.FindByRawText(ctx, sanitized); err == nil {
		log.Info("pipeline.exact_match", "example_age", time.Since(ex.CreatedAt).String())
		raw, _ := json.Marshal(&ex.Corrected)
		return ex.Corrected, raw, constants.ExtractionSourceTrainingExample, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		log.Warn("pipeline.example_lookup_failed", "error", err)
	}

	examples, err := s.store.Examples.Recent(ctx, s.fewShotLimit)
	if err != nil {
		log.Warn("pipeline.examples_unavailable", "error", err)
		examples = nil
	}

	fields, raw, source, err := s.chain.ExtractFields(ctx, sanitized, examples)
	if err != nil {
		return constants.BiodataFields{}, nil, "", common.WrapError(err, "extraction failed")
	}
	return fields, raw, source, nil
}

// Accept applies the reviewer's corrected fields: maps them to the final
// profile schema, stores the profile, appends the correction to the
// example log, and marks the intake ACCEPTED.
func (s *Service) Accept(ctx context.Context, intakeID uuid.UUID, corrected constants.BiodataFields) (*repository.StoredProfile, error) {
	log := s.logger.With("intake_id", intakeID.String())

	final, err := mapper.ToFinalProfile(corrected)
	if err != nil {
		return nil, err
	}

	parsed, err := json.Marshal(&corrected)
	if err != nil {
		return nil, common.WrapError(err, "marshal corrected fields")
	}

	stored, err := s.store.Profiles.Insert(ctx, &final, intakeID, parsed)
	if err != nil {
		return nil, err
	}

	// Learning step. A failure here must not lose the accepted profile,
	// only the future few-shot benefit.
	if intakeID != uuid.Nil {
		if intake, err := s.store.Intakes.GetByID(ctx, intakeID); err == nil {
			sanitized := sanitize.Sanitize(intake.RawText)
			if sanitized != "" {
				if err := s.store.Examples.Append(ctx, sanitized, corrected); err != nil {
					log.Warn("pipeline.example_append_failed", "error", err)
				}
			}
		} else {
			log.Warn("pipeline.intake_fetch_failed", "error", err)
		}
		s.markStatus(ctx, log, intakeID, constants.IntakeStatusAccepted)
	}

	log.Info("pipeline.accepted",
		"profile_id", stored.ID.String(),
		"first_name", final.FirstName,
	)
	return stored, nil
}

// AcceptText is the stateless accept: used when the preview came from
// ProcessText and there is no intake row. The original sanitized text
// must be supplied so the correction log still learns from it.
func (s *Service) AcceptText(ctx context.Context, sanitizedText string, corrected constants.BiodataFields) (*repository.StoredProfile, error) {
	final, err := mapper.ToFinalProfile(corrected)
	if err != nil {
		return nil, err
	}
	parsed, err := json.Marshal(&corrected)
	if err != nil {
		return nil, common.WrapError(err, "marshal corrected fields")
	}
	stored, err := s.store.Profiles.Insert(ctx, &final, uuid.Nil, parsed)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(sanitizedText); t != "" {
		if err := s.store.Examples.Append(ctx, t, corrected); err != nil {
			s.logger.Warn("pipeline.example_append_failed", "error", err)
		}
	}
	return stored, nil
}

// resolveText picks the intake's text: inline text wins, then a .txt
// file reference. Other file types are rejected until a converter
// exists for them.
func (s *Service) resolveText(intake *repository.RawIntake) (string, error) {
	if strings.TrimSpace(intake.RawText) != "" {
		return intake.RawText, nil
	}
	if intake.RawFileURL == "" {
		return "", common.NewAppError("EMPTY_INTAKE", "intake has neither text nor file", common.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(intake.RawFileURL))
	if ext != ".txt" {
		return "", common.NewAppError("UNSUPPORTED_FILE",
			fmt.Sprintf("unsupported file type %q", ext), common.ErrInvalidInput)
	}
	b, err := os.ReadFile(intake.RawFileURL)
	if err != nil {
		return "", common.WrapError(err, "read intake file")
	}
	return string(b), nil
}

func (s *Service) markStatus(ctx context.Context, log *slog.Logger, id uuid.UUID, status constants.IntakeStatus) {
	if err := s.store.Intakes.SetStatus(ctx, id, status); err != nil {
		log.Warn("pipeline.status_update_failed", "status", string(status), "error", err)
	}
}
