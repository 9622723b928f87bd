package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
)

func TestCatalogShow_Default(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	out, _, err := runCLI(t, "catalog", "show")
	if err != nil {
		t.Fatalf("catalog show failed: %v", err)
	}
	parsed, err := catalog.Parse([]byte(out))
	if err != nil {
		t.Fatalf("shown catalog does not parse: %v", err)
	}
	if len(parsed.Categories) != len(catalog.Default().Categories) {
		t.Errorf("categories = %d, want %d", len(parsed.Categories), len(catalog.Default().Categories))
	}
}

func TestCatalogValidate(t *testing.T) {
	dir := t.TempDir()
	data, err := catalog.Default().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "good.yaml", string(data))
	writeFile(t, dir, "bad.yaml", "categories: 12\n")

	out, _, err := runCLI(t, "catalog", "validate", filepath.Join(dir, "good.yaml"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Catalog is valid") {
		t.Errorf("unexpected output: %s", out)
	}

	_, _, err = runCLI(t, "catalog", "validate", filepath.Join(dir, "bad.yaml"))
	if !errors.Is(err, catalog.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestDashboard_SkipRun(t *testing.T) {
	t.Setenv("STACKAUDIT_SKIP_DASHBOARD_RUN", "true")
	if _, _, err := runCLI(t, "dashboard", t.TempDir()); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
}

func TestDashboard_MissingProject(t *testing.T) {
	t.Setenv("STACKAUDIT_SKIP_DASHBOARD_RUN", "true")
	_, _, err := runCLI(t, "dashboard", filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing project")
	}
}

func TestMCP_SkipStart(t *testing.T) {
	t.Setenv("STACKAUDIT_SKIP_MCP_START", "true")
	if _, _, err := runCLI(t, "mcp", t.TempDir()); err != nil {
		t.Fatalf("mcp failed: %v", err)
	}
}

func TestWatch_Once(t *testing.T) {
	t.Setenv("STACKAUDIT_WATCH_ONCE", "true")
	dir := t.TempDir()

	out, _, err := runCLI(t, "watch", dir)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if !strings.Contains(out, "Watching") || !strings.Contains(out, "Overall compliance:") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !fileExists(filepath.Join(dir, storage.DefaultReportFile)) {
		t.Error("expected report after the initial run")
	}
}

func withTempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir := t.TempDir()
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return dir, func() {
		_ = os.Chdir(old)
	}
}

func TestWatch_OnceWithEventStream(t *testing.T) {
	t.Setenv("STACKAUDIT_WATCH_ONCE", "true")

	out, _, err := runCLI(t, "watch", t.TempDir(), "--no-report", "--events-addr", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if !strings.Contains(out, "Streaming events on http://127.0.0.1:0/events") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
