package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
)

// Timestamps are stored as RFC3339 text so the rows stay portable across
// drivers and inspectable with the sqlite3 shell.
const sqliteTimeFormat = time.RFC3339Nano

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS raw_biodata (
	id           TEXT PRIMARY KEY,
	raw_text     TEXT NOT NULL,
	raw_file_url TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL,
	status       TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_raw_biodata_hash ON raw_biodata(content_hash);

CREATE TABLE IF NOT EXISTS training_examples (
	id             TEXT PRIMARY KEY,
	raw_text       TEXT NOT NULL,
	corrected_json TEXT NOT NULL,
	source         TEXT NOT NULL DEFAULT 'manual_correction',
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_training_examples_created ON training_examples(created_at);

CREATE TABLE IF NOT EXISTS profiles (
	id                  TEXT PRIMARY KEY,
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
	raw_biodata_id      TEXT NOT NULL DEFAULT '',
	parsed_json         TEXT NOT NULL DEFAULT '',
	created_at          TEXT NOT NULL,
	updated_at          TEXT NOT NULL
);
`

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, sqliteSchema)
	return err
}

// NewSQLiteStore wires the three repositories over one sqlite handle.
func NewSQLiteStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		Intakes:  &sqliteIntakeRepository{db: db, logger: logger},
		Examples: &sqliteExampleRepository{db: db, logger: logger},
		Profiles: &sqliteProfileRepository{db: db, logger: logger},
	}
}

type sqliteIntakeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *sqliteIntakeRepository) Create(ctx context.Context, in *NewIntake) (*RawIntake, error) {
	row := &RawIntake{
		ID:          uuid.New(),
		RawText:     in.RawText,
		RawFileURL:  in.RawFileURL,
		Source:      in.Source,
		Status:      constants.IntakeStatusPending,
		ContentHash: in.ContentHash,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO raw_biodata (id, raw_text, raw_file_url, source, status, content_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.RawText, row.RawFileURL, string(row.Source), string(row.Status),
		row.ContentHash, row.CreatedAt.Format(sqliteTimeFormat),
	)
	if err != nil {
		r.logger.Error("failed to create intake", "error", err)
		return nil, common.WrapError(err, "create intake")
	}
	return row, nil
}

func (r *sqliteIntakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*RawIntake, error) {
	return scanIntake(r.db.QueryRowContext(ctx,
		`SELECT id, raw_text, raw_file_url, source, status, content_hash, created_at
		 FROM raw_biodata WHERE id = ?`, id.String()))
}

func (r *sqliteIntakeRepository) FindByHash(ctx context.Context, hash string) (*RawIntake, error) {
	return scanIntake(r.db.QueryRowContext(ctx,
		`SELECT id, raw_text, raw_file_url, source, status, content_hash, created_at
		 FROM raw_biodata WHERE content_hash = ? ORDER BY created_at DESC LIMIT 1`, hash))
}

func (r *sqliteIntakeRepository) SetStatus(ctx context.Context, id uuid.UUID, status constants.IntakeStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE raw_biodata SET status = ? WHERE id = ?`, string(status), id.String())
	if err != nil {
		return common.WrapError(err, "set intake status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type sqlRow interface {
	Scan(dest ...any) error
}

func scanIntake(row sqlRow) (*RawIntake, error) {
	var (
		out       RawIntake
		id        string
		source    string
		status    string
		createdAt string
	)
	err := row.Scan(&id, &out.RawText, &out.RawFileURL, &source, &status, &out.ContentHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan intake")
	}
	out.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, common.WrapError(err, "parse intake id")
	}
	out.Source = constants.IntakeSource(source)
	out.Status = constants.IntakeStatus(status)
	out.CreatedAt, err = time.Parse(sqliteTimeFormat, createdAt)
	if err != nil {
		return nil, common.WrapError(err, "parse intake created_at")
	}
	return &out, nil
}

type sqliteExampleRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *sqliteExampleRepository) Append(ctx context.Context, rawText string, corrected constants.BiodataFields) error {
	b, err := json.Marshal(&corrected)
	if err != nil {
		return common.WrapError(err, "marshal corrected fields")
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO training_examples (id, raw_text, corrected_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		uuid.New().String(), rawText, string(b), time.Now().UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		r.logger.Error("failed to append correction example", "error", err)
		return common.WrapError(err, "append correction example")
	}
	return nil
}

func (r *sqliteExampleRepository) Recent(ctx context.Context, n int) ([]extract.CorrectionExample, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT raw_text, corrected_json, created_at
		 FROM training_examples ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, common.WrapError(err, "query recent examples")
	}
	defer rows.Close()

	var out []extract.CorrectionExample
	for rows.Next() {
		ex, err := scanExample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ex)
	}
	return out, rows.Err()
}

func (r *sqliteExampleRepository) FindByRawText(ctx context.Context, rawText string) (*extract.CorrectionExample, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT raw_text, corrected_json, created_at
		 FROM training_examples WHERE raw_text = ? ORDER BY created_at DESC LIMIT 1`, rawText)
	var (
		text      string
		corrected string
		createdAt string
	)
	err := row.Scan(&text, &corrected, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan correction example")
	}
	return buildExample(text, corrected, createdAt)
}

func scanExample(rows *sql.Rows) (*extract.CorrectionExample, error) {
	var text, corrected, createdAt string
	if err := rows.Scan(&text, &corrected, &createdAt); err != nil {
		return nil, common.WrapError(err, "scan correction example")
	}
	return buildExample(text, corrected, createdAt)
}

func buildExample(rawText, correctedJSON, createdAt string) (*extract.CorrectionExample, error) {
	var fields constants.BiodataFields
	if err := json.Unmarshal([]byte(correctedJSON), &fields); err != nil {
		return nil, common.WrapError(err, "unmarshal corrected fields")
	}
	at, err := time.Parse(sqliteTimeFormat, createdAt)
	if err != nil {
		return nil, common.WrapError(err, "parse example created_at")
	}
	return &extract.CorrectionExample{RawText: rawText, Corrected: fields, CreatedAt: at}, nil
}

type sqliteProfileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *sqliteProfileRepository) Insert(ctx context.Context, p *mapper.FinalProfile, rawIntakeID uuid.UUID, parsedJSON []byte) (*StoredProfile, error) {
	now := time.Now().UTC()
	stored := &StoredProfile{
		ID:          uuid.New(),
		Profile:     *p,
		RawIntakeID: rawIntakeID,
		ParsedJSON:  parsedJSON,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	intakeRef := ""
	if rawIntakeID != uuid.Nil {
		intakeRef = rawIntakeID.String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (
			id, first_name, last_name, gender, datetime_of_birth, height,
			marital_status, religion, caste, subcaste, mother_tongue,
			education, occupation, company, income, current_location,
			citizenship, phone_number, family_details, bio,
			partner_preferences, additional_notes, status,
			raw_biodata_id, parsed_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID.String(), p.FirstName, p.LastName, p.Gender, p.DatetimeOfBirth, p.Height,
		p.MaritalStatus, p.Religion, p.Caste, p.Subcaste, p.MotherTongue,
		p.Education, p.Occupation, p.Company, p.Income, p.CurrentLocation,
		p.Citizenship, p.PhoneNumber, p.FamilyDetails, p.Bio,
		p.PartnerPrefs, p.AdditionalNotes, p.Status,
		intakeRef, string(parsedJSON), now.Format(sqliteTimeFormat), now.Format(sqliteTimeFormat),
	)
	if err != nil {
		r.logger.Error("failed to insert profile", "error", err)
		return nil, common.WrapError(err, "insert profile")
	}
	return stored, nil
}

func (r *sqliteProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*StoredProfile, error) {
	rows, err := r.db.QueryContext(ctx, profileSelectSQLite+` WHERE id = ?`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "query profile")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, common.WrapError(err, "query profile")
		}
		return nil, common.ErrNotFound
	}
	return scanProfile(rows)
}

func (r *sqliteProfileRepository) List(ctx context.Context, limit int) ([]*StoredProfile, error) {
	q := profileSelectSQLite + ` ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, common.WrapError(err, "list profiles")
	}
	defer rows.Close()

	var out []*StoredProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const profileSelectSQLite = `SELECT
	id, first_name, last_name, gender, datetime_of_birth, height,
	marital_status, religion, caste, subcaste, mother_tongue,
	education, occupation, company, income, current_location,
	citizenship, phone_number, family_details, bio,
	partner_preferences, additional_notes, status,
	raw_biodata_id, parsed_json, created_at, updated_at
FROM profiles`

func scanProfile(rows *sql.Rows) (*StoredProfile, error) {
	var (
		out        StoredProfile
		id         string
		intakeRef  string
		parsedJSON string
		createdAt  string
		updatedAt  string
	)
	p := &out.Profile
	err := rows.Scan(
		&id, &p.FirstName, &p.LastName, &p.Gender, &p.DatetimeOfBirth, &p.Height,
		&p.MaritalStatus, &p.Religion, &p.Caste, &p.Subcaste, &p.MotherTongue,
		&p.Education, &p.Occupation, &p.Company, &p.Income, &p.CurrentLocation,
		&p.Citizenship, &p.PhoneNumber, &p.FamilyDetails, &p.Bio,
		&p.PartnerPrefs, &p.AdditionalNotes, &p.Status,
		&intakeRef, &parsedJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, common.WrapError(err, "scan profile")
	}
	out.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, common.WrapError(err, "parse profile id")
	}
	if intakeRef != "" {
		out.RawIntakeID, err = uuid.Parse(intakeRef)
		if err != nil {
			return nil, common.WrapError(err, "parse intake ref")
		}
	}
	out.ParsedJSON = []byte(parsedJSON)
	out.CreatedAt, err = time.Parse(sqliteTimeFormat, createdAt)
	if err != nil {
		return nil, common.WrapError(err, "parse profile created_at")
	}
	out.UpdatedAt, err = time.Parse(sqliteTimeFormat, updatedAt)
	if err != nil {
		return nil, common.WrapError(err, "parse profile updated_at")
	}
	return &out, nil
}
