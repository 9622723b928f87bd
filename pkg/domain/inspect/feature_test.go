package inspect_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
)

func TestFeatureDetector_AllKeywordsImplemented(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/app/(admin)/dashboard/page.tsx": "export default function AdminDashboard() { return <h1>Admin Dashboard</h1> }",
	})

	section := inspect.NewFeatureDetector().Detect(rc)

	admin := section[catalog.CategoryAdminPanel]
	if !reflect.DeepEqual(admin.Implemented, []catalog.Feature{"dashboard"}) {
		t.Errorf("Implemented = %v, want [dashboard]", admin.Implemented)
	}
	if len(admin.NotImplemented) != 5 {
		t.Errorf("expected 5 features not implemented, got %v", admin.NotImplemented)
	}
	if admin.Score == nil || math.Abs(*admin.Score-100.0/6) > 1e-9 {
		t.Errorf("unexpected admin score: %v", admin.Score)
	}

	ev := admin.Evidence["dashboard"]
	if ev.KeywordCount != 2 || ev.FilesMatched != 1 || len(ev.KeywordsFound) != 2 {
		t.Errorf("unexpected evidence: %+v", ev)
	}

	// "admin" is one of four multi-role keywords.
	auth := section[catalog.CategoryAuthentication]
	if !reflect.DeepEqual(auth.PartiallyImplemented, []catalog.Feature{"multi_role"}) {
		t.Errorf("PartiallyImplemented = %v, want [multi_role]", auth.PartiallyImplemented)
	}
}

func TestFeatureDetector_KeywordsAcrossFiles(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/a.ts": "// dashboard",
		"src/b.ts": "// ADMIN",
	})

	admin := inspect.NewFeatureDetector().Detect(rc)[catalog.CategoryAdminPanel]
	if !reflect.DeepEqual(admin.Implemented, []catalog.Feature{"dashboard"}) {
		t.Errorf("Implemented = %v, want [dashboard]", admin.Implemented)
	}
	if ev := admin.Evidence["dashboard"]; ev.FilesMatched != 2 {
		t.Errorf("FilesMatched = %d, want 2", ev.FilesMatched)
	}
}

func TestFeatureDetector_SingleKeywordIsPartial(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/components/Nav.tsx": "<Link href='/dashboard'>Home</Link>",
	})

	admin := inspect.NewFeatureDetector().Detect(rc)[catalog.CategoryAdminPanel]
	if !reflect.DeepEqual(admin.PartiallyImplemented, []catalog.Feature{"dashboard"}) {
		t.Errorf("PartiallyImplemented = %v, want [dashboard]", admin.PartiallyImplemented)
	}
	if admin.Score == nil || math.Abs(*admin.Score-50.0/6) > 1e-9 {
		t.Errorf("unexpected admin score: %v", admin.Score)
	}
}

func TestFeatureDetector_NoSources(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"README.md": "dashboard admin",
	})

	section := inspect.NewFeatureDetector().Detect(rc)
	if len(section) != len(rc.Catalog.Categories) {
		t.Fatalf("expected every category, got %d", len(section))
	}
	for _, cat := range rc.Catalog.Categories {
		status := section[cat.Name]
		if len(status.Implemented) != 0 || len(status.PartiallyImplemented) != 0 {
			t.Errorf("%s: expected nothing implemented, got %+v", cat.Name, status)
		}
		if len(status.NotImplemented) != len(cat.Features) {
			t.Errorf("%s: expected %d features not implemented, got %v", cat.Name, len(cat.Features), status.NotImplemented)
		}
		if status.Score == nil || *status.Score != 0 {
			t.Errorf("%s: expected zero score, got %v", cat.Name, status.Score)
		}
	}

	if section[catalog.CategoryResidentPanel].Evidence != nil {
		t.Error("categories without keywords should carry no evidence")
	}
}

func TestFeatureDetector_IgnoresAndSkips(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"node_modules/admin/index.ts": "dashboard admin",
		"dist/bundle.ts":              "dashboard admin",
		"src/blob.ts":                 "\x00dashboard admin",
	})

	admin := inspect.NewFeatureDetector().Detect(rc)[catalog.CategoryAdminPanel]
	if len(admin.Implemented)+len(admin.PartiallyImplemented) != 0 {
		t.Errorf("ignored and binary files must not count, got %+v", admin)
	}
	if got := rc.Stats().Skipped[inspect.SkipBinary]; got != 1 {
		t.Errorf("expected one binary skip, got %d", got)
	}
}
