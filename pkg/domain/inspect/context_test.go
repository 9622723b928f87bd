package inspect_test

import (
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
)

func TestRunContext_ReadRecordsSkips(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/a.ts":    "const a = 1",
		"src/blob.ts": "\x00\x01",
	})

	if res := rc.Read("src/a.ts"); !res.OK() {
		t.Fatalf("expected readable file, got %+v", res)
	}
	rc.Read("src/blob.ts")
	rc.Read("src/missing.ts")
	rc.Read("src")

	stats := rc.Stats()
	if stats.FilesRead != 4 {
		t.Errorf("FilesRead = %d, want 4", stats.FilesRead)
	}
	if stats.SkippedTotal() != 3 {
		t.Errorf("SkippedTotal = %d, want 3", stats.SkippedTotal())
	}
	for _, reason := range []inspect.SkipReason{inspect.SkipBinary, inspect.SkipUnreadable, inspect.SkipNotFile} {
		if stats.Skipped[reason] != 1 {
			t.Errorf("Skipped[%s] = %d, want 1", reason, stats.Skipped[reason])
		}
	}

	// Stats returns a copy.
	stats.Skipped[inspect.SkipBinary] = 99
	if rc.Stats().Skipped[inspect.SkipBinary] != 1 {
		t.Error("Stats should not expose internal counters")
	}
}

func TestRunContext_ExistsAndIsDir(t *testing.T) {
	rc := newRunContext(t, map[string]string{"src/lib/db.ts": ""})

	if !rc.Exists("src/lib/db.ts") || rc.IsDir("src/lib/db.ts") {
		t.Error("expected db.ts to exist as a file")
	}
	if !rc.IsDir("src/lib") {
		t.Error("expected src/lib to be a directory")
	}
	if rc.Exists("src/app") {
		t.Error("expected src/app to be missing")
	}
}
