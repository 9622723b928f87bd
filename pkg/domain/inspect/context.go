package inspect

import (
	"io"
	"log/slog"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
)

// RunStats counts file reads for one run.
type RunStats struct {
	FilesRead int                `json:"files_read"`
	Skipped   map[SkipReason]int `json:"skipped"`
}

// SkippedTotal is the number of reads that produced no usable text.
func (s RunStats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// RunContext is created fresh for every run and handed to each component.
// It is not safe for concurrent use.
type RunContext struct {
	Workspace Workspace
	Catalog   *catalog.Catalog
	Logger    *slog.Logger

	stats RunStats
}

// NewRunContext builds a context for one run. A nil logger discards output.
func NewRunContext(ws Workspace, cat *catalog.Catalog, logger *slog.Logger) *RunContext {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RunContext{
		Workspace: ws,
		Catalog:   cat,
		Logger:    logger,
		stats:     RunStats{Skipped: make(map[SkipReason]int)},
	}
}

// Read reads a file through the workspace and records skips.
func (rc *RunContext) Read(path string) FileResult {
	res := rc.Workspace.ReadText(path)
	rc.stats.FilesRead++
	if !res.OK() {
		rc.stats.Skipped[res.Skip]++
		rc.Logger.Debug("skipping file", "path", path, "reason", string(res.Skip))
	}
	return res
}

// Exists reports whether path exists in the workspace.
func (rc *RunContext) Exists(path string) bool {
	_, err := rc.Workspace.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func (rc *RunContext) IsDir(path string) bool {
	info, err := rc.Workspace.Stat(path)
	return err == nil && info.IsDir()
}

// Stats returns a copy of the read counters.
func (rc *RunContext) Stats() RunStats {
	skipped := make(map[SkipReason]int, len(rc.stats.Skipped))
	for k, v := range rc.stats.Skipped {
		skipped[k] = v
	}
	return RunStats{FilesRead: rc.stats.FilesRead, Skipped: skipped}
}
