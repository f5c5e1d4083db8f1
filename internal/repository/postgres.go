package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS raw_biodata (
	id           UUID PRIMARY KEY,
	raw_text     TEXT NOT NULL,
	raw_file_url TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL,
	status       TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_raw_biodata_hash ON raw_biodata(content_hash);

CREATE TABLE IF NOT EXISTS training_examples (
	id             UUID PRIMARY KEY,
	raw_text       TEXT NOT NULL,
	corrected_json JSONB NOT NULL,
	source         TEXT NOT NULL DEFAULT 'manual_correction',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_training_examples_created ON training_examples(created_at);

CREATE TABLE IF NOT EXISTS profiles (
	id                  UUID PRIMARY KEY,
	first_name          TEXT NOT NULL,
	last_name           TEXT NOT NULL DEFAULT '',
	gender              TEXT NOT NULL,
	datetime_of_birth   TEXT NOT NULL DEFAULT '',
	height              TEXT NOT NULL DEFAULT '',
	marital_status      TEXT NOT NULL DEFAULT '',
	religion            TEXT NOT NULL DEFAULT '',
	caste               TEXT NOT NULL DEFAULT '',
	subcaste            TEXT NOT NULL DEFAULT '',
	mother_tongue       TEXT NOT NULL DEFAULT '',
	education           TEXT NOT NULL DEFAULT '',
	occupation          TEXT NOT NULL DEFAULT '',
	company             TEXT NOT NULL DEFAULT '',
	income              TEXT NOT NULL DEFAULT '',
	current_location    TEXT NOT NULL DEFAULT '',
	citizenship         TEXT NOT NULL DEFAULT '',
	phone_number        TEXT NOT NULL DEFAULT '',
	family_details      TEXT NOT NULL DEFAULT '',
	bio                 TEXT NOT NULL DEFAULT '',
	partner_preferences TEXT NOT NULL DEFAULT '',
	additional_notes    TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL,
	raw_biodata_id      UUID,
	parsed_json         JSONB,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func ensurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, postgresSchema)
	return err
}

// NewPostgresStore wires the three repositories over one pgx pool.
func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		Intakes:  &pgIntakeRepository{pool: pool, logger: logger},
		Examples: &pgExampleRepository{pool: pool, logger: logger},
		Profiles: &pgProfileRepository{pool: pool, logger: logger},
	}
}

type pgIntakeRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func (r *pgIntakeRepository) Create(ctx context.Context, in *NewIntake) (*RawIntake, error) {
	row := &RawIntake{
		ID:          uuid.New(),
		RawText:     in.RawText,
		RawFileURL:  in.RawFileURL,
		Source:      in.Source,
		Status:      constants.IntakeStatusPending,
		ContentHash: in.ContentHash,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO raw_biodata (id, raw_text, raw_file_url, source, status, content_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.RawText, row.RawFileURL, string(row.Source), string(row.Status),
		row.ContentHash, row.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create intake", "error", err)
		return nil, common.WrapError(err, "create intake")
	}
	return row, nil
}

func (r *pgIntakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*RawIntake, error) {
	return scanPgIntake(r.pool.QueryRow(ctx,
		`SELECT id, raw_text, raw_file_url, source, status, content_hash, created_at
		 FROM raw_biodata WHERE id = $1`, id))
}

func (r *pgIntakeRepository) FindByHash(ctx context.Context, hash string) (*RawIntake, error) {
	return scanPgIntake(r.pool.QueryRow(ctx,
		`SELECT id, raw_text, raw_file_url, source, status, content_hash, created_at
		 FROM raw_biodata WHERE content_hash = $1 ORDER BY created_at DESC LIMIT 1`, hash))
}

func (r *pgIntakeRepository) SetStatus(ctx context.Context, id uuid.UUID, status constants.IntakeStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE raw_biodata SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return common.WrapError(err, "set intake status")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanPgIntake(row pgx.Row) (*RawIntake, error) {
	var (
		out    RawIntake
		source string
		status string
	)
	err := row.Scan(&out.ID, &out.RawText, &out.RawFileURL, &source, &status, &out.ContentHash, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan intake")
	}
	out.Source = constants.IntakeSource(source)
	out.Status = constants.IntakeStatus(status)
	return &out, nil
}

type pgExampleRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func (r *pgExampleRepository) Append(ctx context.Context, rawText string, corrected constants.BiodataFields) error {
	b, err := json.Marshal(&corrected)
	if err != nil {
		return common.WrapError(err, "marshal corrected fields")
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO training_examples (id, raw_text, corrected_json, created_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), rawText, b, time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("failed to append correction example", "error", err)
		return common.WrapError(err, "append correction example")
	}
	return nil
}

func (r *pgExampleRepository) Recent(ctx context.Context, n int) ([]extract.CorrectionExample, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT raw_text, corrected_json, created_at
		 FROM training_examples ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, common.WrapError(err, "query recent examples")
	}
	defer rows.Close()

	var out []extract.CorrectionExample
	for rows.Next() {
		ex, err := scanPgExample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ex)
	}
	return out, rows.Err()
}

func (r *pgExampleRepository) FindByRawText(ctx context.Context, rawText string) (*extract.CorrectionExample, error) {
	return scanPgExample(r.pool.QueryRow(ctx,
		`SELECT raw_text, corrected_json, created_at
		 FROM training_examples WHERE raw_text = $1 ORDER BY created_at DESC LIMIT 1`, rawText))
}

func scanPgExample(row pgx.Row) (*extract.CorrectionExample, error) {
	var (
		ex        extract.CorrectionExample
		corrected []byte
	)
	err := row.Scan(&ex.RawText, &corrected, &ex.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan correction example")
	}
	if err := json.Unmarshal(corrected, &ex.Corrected); err != nil {
		return nil, common.WrapError(err, "unmarshal corrected fields")
	}
	return &ex, nil
}

type pgProfileRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func (r *pgProfileRepository) Insert(ctx context.Context, p *mapper.FinalProfile, rawIntakeID uuid.UUID, parsedJSON []byte) (*StoredProfile, error) {
	now := time.Now().UTC()
	stored := &StoredProfile{
		ID:          uuid.New(),
		Profile:     *p,
		RawIntakeID: rawIntakeID,
		ParsedJSON:  parsedJSON,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var intakeRef any
	if rawIntakeID != uuid.Nil {
		intakeRef = rawIntakeID
	}
	var parsed any
	if len(parsedJSON) > 0 {
		parsed = parsedJSON
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (
			id, first_name, last_name, gender, datetime_of_birth, height,
			marital_status, religion, caste, subcaste, mother_tongue,
			education, occupation, company, income, current_location,
			citizenship, phone_number, family_details, bio,
			partner_preferences, additional_notes, status,
			raw_biodata_id, parsed_json, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		stored.ID, p.FirstName, p.LastName, p.Gender, p.DatetimeOfBirth, p.Height,
		p.MaritalStatus, p.Religion, p.Caste, p.Subcaste, p.MotherTongue,
		p.Education, p.Occupation, p.Company, p.Income, p.CurrentLocation,
		p.Citizenship, p.PhoneNumber, p.FamilyDetails, p.Bio,
		p.PartnerPrefs, p.AdditionalNotes, p.Status,
		intakeRef, parsed, now, now,
	)
	if err != nil {
		r.logger.Error("failed to insert profile", "error", err)
		return nil, common.WrapError(err, "insert profile")
	}
	return stored, nil
}

func (r *pgProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*StoredProfile, error) {
	return scanPgProfile(r.pool.QueryRow(ctx, profileSelectPostgres+` WHERE id = $1`, id))
}

func (r *pgProfileRepository) List(ctx context.Context, limit int) ([]*StoredProfile, error) {
	q := profileSelectPostgres + ` ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, common.WrapError(err, "list profiles")
	}
	defer rows.Close()

	var out []*StoredProfile
	for rows.Next() {
		p, err := scanPgProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const profileSelectPostgres = `SELECT
	id, first_name, last_name, gender, datetime_of_birth, height,
	marital_status, religion, caste, subcaste, mother_tongue,
	education, occupation, company, income, current_location,
	citizenship, phone_number, family_details, bio,
	partner_preferences, additional_notes, status,
	raw_biodata_id, parsed_json, created_at, updated_at
FROM profiles`

func scanPgProfile(row pgx.Row) (*StoredProfile, error) {
	var (
		out       StoredProfile
		intakeRef *uuid.UUID
		parsed    []byte
	)
	p := &out.Profile
	err := row.Scan(
		&out.ID, &p.FirstName, &p.LastName, &p.Gender, &p.DatetimeOfBirth, &p.Height,
		&p.MaritalStatus, &p.Religion, &p.Caste, &p.Subcaste, &p.MotherTongue,
		&p.Education, &p.Occupation, &p.Company, &p.Income, &p.CurrentLocation,
		&p.Citizenship, &p.PhoneNumber, &p.FamilyDetails, &p.Bio,
		&p.PartnerPrefs, &p.AdditionalNotes, &p.Status,
		&intakeRef, &parsed, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan profile")
	}
	if intakeRef != nil {
		out.RawIntakeID = *intakeRef
	}
	out.ParsedJSON = parsed
	return &out, nil
}
