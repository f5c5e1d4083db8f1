package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
)

// defaultExts is the file types batch ingest accepts. Only plain text is
// parseable today; the set is a map so a converter can widen it later.
var defaultExts = map[string]struct{}{
	"txt": {},
}

// FSIngestor reads biodata files from the local filesystem and stores
// them as pending intake rows.
type FSIngestor struct {
	Intakes     repository.IntakeRepository
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> default set
	Logger      *slog.Logger
}

func NewFSIngestor(intakes repository.IntakeRepository, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{Intakes: intakes, Logger: logger}
}

func (i *FSIngestor) allowedExt(ext string) bool {
	exts := i.AllowedExts
	if exts == nil {
		exts = defaultExts
	}
	_, ok := exts[ext]
	return ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	var out IngestionResult

	abs, err := filepath.Abs(path)
	if err != nil {
		i.Logger.Error("abs path error", "path", path, "error", err)
		return out, err
	}

	ext := normalizeExt(filepath.Ext(abs))
	if ext == "" || !i.allowedExt(ext) {
		return out, fmt.Errorf("unsupported or missing extension %q", ext)
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		i.Logger.Error("read error", "path", abs, "error", err)
		return out, err
	}
	text := string(b)
	if strings.TrimSpace(text) == "" {
		return out, errors.New("file is empty")
	}

	hash := pipeline.ContentHash(text, abs)

	if existing, err := i.Intakes.FindByHash(ctx, hash); err == nil {
		out = IngestionResult{
			SourcePath:   abs,
			IntakeID:     existing.ID.String(),
			Deduplicated: true,
			HashHex:      hash,
			IngestedAt:   existing.CreatedAt,
		}
		return out, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return out, err
	}

	row, err := i.Intakes.Create(ctx, &repository.NewIntake{
		RawText:     text,
		RawFileURL:  abs,
		Source:      constants.IntakeSourceBatchIngest,
		ContentHash: hash,
	})
	if err != nil {
		return out, err
	}

	out = IngestionResult{
		SourcePath: abs,
		IntakeID:   row.ID.String(),
		HashHex:    hash,
		IngestedAt: row.CreatedAt,
	}
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested, and
// calls IngestPath for each matching file. Returns per-file results plus
// aggregate stats.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !i.allowedExt(normalizeExt(filepath.Ext(path))) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path)
		if err != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	i.Logger.Info("ingest.directory_done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return results, stats, nil
}
