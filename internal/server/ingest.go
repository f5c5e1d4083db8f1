package server

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ingestDirectoryRequest struct {
	RootPath   string `json:"root_path"`
	SkipHidden *bool  `json:"skip_hidden"`
}

type ingestFileResult struct {
	SourcePath   string `json:"source_path"`
	IntakeID     string `json:"intake_id,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
	ContentHash  string `json:"content_hash,omitempty"`
	IngestedAt   string `json:"ingested_at,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ingestDirectoryResponse struct {
	Results      []ingestFileResult `json:"results"`
	Scanned      uint32             `json:"scanned"`
	Matched      uint32             `json:"matched"`
	Succeeded    uint32             `json:"succeeded"`
	Deduplicated uint32             `json:"deduplicated"`
	Failed       uint32             `json:"failed"`
}

func (s *Server) handleIngestDirectory(w http.ResponseWriter, r *http.Request) {
	var req ingestDirectoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	root := strings.TrimSpace(req.RootPath)
	if root == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "root_path is required"})
		return
	}
	skipHidden := true
	if req.SkipHidden != nil {
		skipHidden = *req.SkipHidden
	}

	s.logger.Info("starting directory ingest",
		zap.String("root", root),
		zap.Bool("skip_hidden", skipHidden),
	)
	results, stats, err := s.ingestor.IngestDirectory(r.Context(), root, skipHidden)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := ingestDirectoryResponse{
		Results:      make([]ingestFileResult, 0, len(results)),
		Scanned:      stats.Scanned,
		Matched:      stats.Matched,
		Succeeded:    stats.Succeeded,
		Deduplicated: stats.Deduplicated,
		Failed:       stats.Failed,
	}
	for _, res := range results {
		fr := ingestFileResult{
			SourcePath:   res.SourcePath,
			IntakeID:     res.IntakeID,
			Deduplicated: res.Deduplicated,
			ContentHash:  res.HashHex,
			Error:        res.Err,
		}
		if !res.IngestedAt.IsZero() {
			fr.IngestedAt = res.IngestedAt.UTC().Format(time.RFC3339)
		}
		out.Results = append(out.Results, fr)
	}
	writeJSON(w, http.StatusOK, out)
}
