package inspect_test

import (
	"path"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
	"github.com/psanford/memfs"
)

// newRunContext builds a run over an in-memory project using the built-in
// catalog.
func newRunContext(t *testing.T, files map[string]string) *inspect.RunContext {
	t.Helper()
	mfs := memfs.New()
	for name, content := range files {
		if dir := path.Dir(name); dir != "." {
			if err := mfs.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", dir, err)
			}
		}
		if err := mfs.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cat := catalog.Default()
	ws := storage.NewWorkspaceFS(mfs, "/project", storage.WithIgnoreSegments(cat.Sources.Ignore...))
	return inspect.NewRunContext(ws, cat, nil)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
