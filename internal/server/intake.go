package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
	"github.com/joseph-ayodele/biodata-intake/internal/sanitize"
)

type submitRequest struct {
	Text    string `json:"text"`
	FileURL string `json:"file_url"`
	Source  string `json:"source"`
}

type submitResponse struct {
	IntakeID  string `json:"intake_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	row, err := s.pipeline.Submit(r.Context(), pipeline.Submission{
		Text:    req.Text,
		FileURL: req.FileURL,
		Source:  constants.IntakeSource(strings.TrimSpace(req.Source)),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		IntakeID:  row.ID.String(),
		Status:    string(row.Status),
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
	})
}

type processTextRequest struct {
	Text string `json:"text"`
}

// handleProcessText is the synchronous form flow: text in, preview out,
// nothing stored.
func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	var req processTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "text is required"})
		return
	}

	p, err := s.pipeline.ProcessText(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProcessIntake(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id must be a UUID"})
		return
	}

	p, err := s.pipeline.Process(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type acceptRequest struct {
	Fields map[string]string `json:"fields"`
}

type acceptResponse struct {
	ProfileID string `json:"profile_id"`
	Status    string `json:"status"`
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id must be a UUID"})
		return
	}

	var req acceptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	for k := range req.Fields {
		if !constants.IsFieldKey(k) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown field key: " + k, Code: "INVALID_INPUT"})
			return
		}
	}

	stored, err := s.pipeline.Accept(r.Context(), id, constants.FieldsFromMap(req.Fields))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("profile accepted",
		zap.String("intake_id", id.String()),
		zap.String("profile_id", stored.ID.String()),
	)
	writeJSON(w, http.StatusCreated, acceptResponse{
		ProfileID: stored.ID.String(),
		Status:    stored.Profile.Status,
	})
}

type acceptTextRequest struct {
	Text   string            `json:"text"`
	Fields map[string]string `json:"fields"`
}

// handleAcceptText stores a profile for a preview that was never
// persisted as an intake, the web form flow. The raw text rides along so
// the correction log still learns from the pair.
func (s *Server) handleAcceptText(w http.ResponseWriter, r *http.Request) {
	var req acceptTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	for k := range req.Fields {
		if !constants.IsFieldKey(k) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown field key: " + k, Code: "INVALID_INPUT"})
			return
		}
	}

	stored, err := s.pipeline.AcceptText(r.Context(), sanitize.Sanitize(req.Text), constants.FieldsFromMap(req.Fields))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acceptResponse{
		ProfileID: stored.ID.String(),
		Status:    stored.Profile.Status,
	})
}
