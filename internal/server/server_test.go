package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/export"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/ingest"
	"github.com/joseph-ayodele/biodata-intake/internal/mapper"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
	"github.com/joseph-ayodele/biodata-intake/internal/rules"
)

type memIntakes struct {
	rows map[uuid.UUID]*repository.RawIntake
}

func (m *memIntakes) Create(_ context.Context, in *repository.NewIntake) (*repository.RawIntake, error) {
	row := &repository.RawIntake{
		ID:          uuid.New(),
		RawText:     in.RawText,
		RawFileURL:  in.RawFileURL,
		Source:      in.Source,
		Status:      constants.IntakeStatusPending,
		ContentHash: in.ContentHash,
		CreatedAt:   time.Now().UTC(),
	}
	m.rows[row.ID] = row
	return row, nil
}

func (m *memIntakes) GetByID(_ context.Context, id uuid.UUID) (*repository.RawIntake, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return row, nil
}

func (m *memIntakes) FindByHash(_ context.Context, hash string) (*repository.RawIntake, error) {
	for _, row := range m.rows {
		if row.ContentHash == hash {
			return row, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memIntakes) SetStatus(_ context.Context, id uuid.UUID, status constants.IntakeStatus) error {
	row, ok := m.rows[id]
	if !ok {
		return common.ErrNotFound
	}
	row.Status = status
	return nil
}

type memExamples struct {
	rows []extract.CorrectionExample
}

func (m *memExamples) Append(_ context.Context, rawText string, corrected constants.BiodataFields) error {
	m.rows = append(m.rows, extract.CorrectionExample{RawText: rawText, Corrected: corrected, CreatedAt: time.Now().UTC()})
	return nil
}

func (m *memExamples) Recent(_ context.Context, n int) ([]extract.CorrectionExample, error) {
	if n > len(m.rows) {
		n = len(m.rows)
	}
	return m.rows[len(m.rows)-n:], nil
}

func (m *memExamples) FindByRawText(_ context.Context, rawText string) (*extract.CorrectionExample, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].RawText == rawText {
			return &m.rows[i], nil
		}
	}
	return nil, common.ErrNotFound
}

type memProfiles struct {
	rows []*repository.StoredProfile
}

func (m *memProfiles) Insert(_ context.Context, p *mapper.FinalProfile, rawIntakeID uuid.UUID, parsedJSON []byte) (*repository.StoredProfile, error) {
	now := time.Now().UTC()
	row := &repository.StoredProfile{
		ID:          uuid.New(),
		Profile:     *p,
		RawIntakeID: rawIntakeID,
		ParsedJSON:  parsedJSON,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memProfiles) GetByID(_ context.Context, id uuid.UUID) (*repository.StoredProfile, error) {
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memProfiles) List(_ context.Context, limit int) ([]*repository.StoredProfile, error) {
	if limit > 0 && limit < len(m.rows) {
		return m.rows[:limit], nil
	}
	return m.rows, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memIntakes) {
	t.Helper()
	intakes := &memIntakes{rows: map[uuid.UUID]*repository.RawIntake{}}
	store := &repository.Store{
		Intakes:  intakes,
		Examples: &memExamples{},
		Profiles: &memProfiles{},
	}
	chain := extract.NewChain(nil, rules.NewExtractor(nil))
	svc := pipeline.NewService(store, chain, common.PipelineConfig{FewShotLimit: 3}, nil)
	srv := New(svc, ingest.NewFSIngestor(intakes, nil), export.NewService(store.Profiles, nil), nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, intakes
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	_ = resp.Body.Close()
}

func TestRequestIDEchoed(t *testing.T) {
	ts, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "upstream-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-42", resp.Header.Get("X-Request-ID"))
	_ = resp.Body.Close()
}

func TestSubmitProcessAcceptFlow(t *testing.T) {
	ts, intakes := newTestServer(t)

	// submit
	resp := postJSON(t, ts.URL+"/api/raw-biodata", map[string]string{
		"text":   "Name: Asha Rao\nDOB: 1995-01-01\nLooking for Groom",
		"source": "whatsapp",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sub := decodeBody[map[string]string](t, resp)
	intakeID := sub["intake_id"]
	require.NotEmpty(t, intakeID)
	assert.Equal(t, "PENDING", sub["status"])

	// process
	resp = postJSON(t, ts.URL+"/api/intake/"+intakeID+"/process", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	previewBody := decodeBody[struct {
		Fields        map[string]string `json:"fields"`
		MissingFields []string          `json:"missing_fields"`
		Metadata      struct {
			Source string `json:"source"`
		} `json:"metadata"`
	}](t, resp)
	assert.Equal(t, "Asha Rao", previewBody.Fields["name"])
	assert.Equal(t, "regex", previewBody.Metadata.Source)
	assert.Contains(t, previewBody.MissingFields, "religion")

	// accept
	resp = postJSON(t, ts.URL+"/api/intake/"+intakeID+"/accept", map[string]any{
		"fields": map[string]string{
			"name":        "Asha Rao",
			"looking_for": "Groom",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	acc := decodeBody[map[string]string](t, resp)
	assert.NotEmpty(t, acc["profile_id"])
	assert.Equal(t, "verified", acc["status"])

	id, err := uuid.Parse(intakeID)
	require.NoError(t, err)
	assert.Equal(t, constants.IntakeStatusAccepted, intakes.rows[id].Status)
}

func TestProcessTextStateless(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/process", map[string]string{
		"text": "Name: Ravi\nHeight: 5ft10in",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[struct {
		Fields map[string]string `json:"fields"`
	}](t, resp)
	assert.Equal(t, "Ravi", body.Fields["name"])
	assert.Equal(t, "5ft10in", body.Fields["height"])
}

func TestBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	t.Run("submit without text or file", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/raw-biodata", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
	t.Run("process unknown intake", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/intake/"+uuid.NewString()+"/process", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
	t.Run("process malformed id", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/intake/not-a-uuid/process", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
	t.Run("accept with unknown field key", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/intake/"+uuid.NewString()+"/accept", map[string]any{
			"fields": map[string]string{"gender": "Female"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
	t.Run("accept without required fields", func(t *testing.T) {
		ts2, intakes := newTestServer(t)
		row, err := intakes.Create(context.Background(), &repository.NewIntake{
			RawText: "Name: Ravi", Source: constants.IntakeSourceWebProcess, ContentHash: "h",
		})
		require.NoError(t, err)
		resp := postJSON(t, ts2.URL+"/api/intake/"+row.ID.String()+"/accept", map[string]any{
			"fields": map[string]string{"height": "5ft10in"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestAcceptTextWithoutIntake(t *testing.T) {
	ts, intakes := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/profiles", map[string]any{
		"text": "Name: Priya Sharma\nLooking for Groom",
		"fields": map[string]string{
			"name":        "Priya Sharma",
			"looking_for": "Groom",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.NotEmpty(t, body["profile_id"])
	assert.Equal(t, "verified", body["status"])
	assert.Empty(t, intakes.rows)
}

func TestIngestEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Name: Asha Rao"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Name: Priya Sharma"), 0o644))

	resp := postJSON(t, ts.URL+"/api/ingest", map[string]any{"root_path": dir})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[struct {
		Succeeded uint32 `json:"succeeded"`
		Failed    uint32 `json:"failed"`
	}](t, resp)
	assert.Equal(t, uint32(2), body.Succeeded)
	assert.Equal(t, uint32(0), body.Failed)
}

func TestExportEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/profiles/export")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ct := resp.Header.Get("Content-Type")
	assert.True(t, strings.Contains(ct, "spreadsheetml"), "unexpected content type %q", ct)
}
