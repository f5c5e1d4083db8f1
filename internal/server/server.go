// Package server exposes the intake pipeline over HTTP with JSON
// request and response bodies.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/export"
	"github.com/joseph-ayodele/biodata-intake/internal/ingest"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
)

// Server bundles the handlers behind one mux.
type Server struct {
	pipeline *pipeline.Service
	ingestor ingest.Ingestor
	exporter *export.Service
	logger   *zap.Logger
}

func New(p *pipeline.Service, ing ingest.Ingestor, exp *export.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{pipeline: p, ingestor: ing, exporter: exp, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/raw-biodata", s.handleSubmit)
	mux.HandleFunc("POST /api/process", s.handleProcessText)
	mux.HandleFunc("POST /api/intake/{id}/process", s.handleProcessIntake)
	mux.HandleFunc("POST /api/intake/{id}/accept", s.handleAccept)
	mux.HandleFunc("POST /api/profiles", s.handleAcceptText)
	mux.HandleFunc("POST /api/ingest", s.handleIngestDirectory)
	mux.HandleFunc("GET /api/profiles/export", s.handleExport)
	return s.withRequestID(mux)
}

// withRequestID tags every request with an ID, honoring one supplied by
// an upstream proxy, and echoes it back in the response.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), rid)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps domain errors to HTTP statuses. Validation and input
// errors are the caller's fault; everything else is a 500 with the
// detail kept server-side.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *common.AppError
	code := ""
	if errors.As(err, &appErr) {
		code = appErr.Code
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: code})
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: code})
	default:
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", common.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: code})
	}
}
