package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultReportFile is written to the project root after each run.
const DefaultReportFile = "armonia_evaluation_report.json"

// ReportWriter persists reports in the project root.
type ReportWriter struct {
	root string
}

// NewReportWriter creates a ReportWriter for the project at root.
func NewReportWriter(root string) *ReportWriter {
	return &ReportWriter{root: root}
}

// ResolvePath ensures the report lands directly in the project root.
func (w *ReportWriter) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	fullPath := filepath.Clean(filepath.Join(w.root, filename))
	if filepath.Dir(fullPath) != filepath.Clean(w.root) {
		return "", fmt.Errorf("invalid report path: %s", filename)
	}
	return fullPath, nil
}

// Save writes v as pretty-printed UTF-8 JSON and returns the file path.
func (w *ReportWriter) Save(v any, filename string) (string, error) {
	path, err := w.ResolvePath(filename)
	if err != nil {
		return "", err
	}

	data, err := EncodeReport(v)
	if err != nil {
		return "", err
	}

	// #nosec G306 -- reports are meant to be shared
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// EncodeReport renders v with two-space indentation and without HTML
// escaping, so non-ASCII and markup characters are kept verbatim.
func EncodeReport(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return buf.Bytes(), nil
}
