package inspect_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
)

func TestDependencyInspector_SingleTechnology(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"package.json": `{"dependencies": {"next": "15.3.3"}}`,
	})

	section := inspect.NewDependencyInspector().Inspect(rc)

	next := section.PackageJSONAnalysis["next"]
	if !next.Installed || next.Version != "15.3.3" {
		t.Fatalf("unexpected next status: %+v", next)
	}
	if next.MeetsRequirement == nil || !*next.MeetsRequirement {
		t.Error("expected next to meet its minimum")
	}
	if next.RangeAdmitsMinimum == nil || !*next.RangeAdmitsMinimum {
		t.Error("expected exact version range to admit the minimum")
	}

	want := []string{"react", "typescript", "tailwindcss", "prisma", "zod", "recharts", "bcrypt", "jsonwebtoken"}
	if !reflect.DeepEqual(section.MissingTechnologies, want) {
		t.Errorf("MissingTechnologies = %v, want %v", section.MissingTechnologies, want)
	}
	for _, key := range want {
		if section.PackageJSONAnalysis[key].Installed {
			t.Errorf("%s should not be installed", key)
		}
	}

	if section.NextJSVersion == nil || *section.NextJSVersion != "15.3.3" {
		t.Errorf("unexpected next version: %v", section.NextJSVersion)
	}
	if section.ReactVersion != nil {
		t.Errorf("expected no react version, got %q", *section.ReactVersion)
	}
	if section.Error != "" {
		t.Errorf("unexpected error: %s", section.Error)
	}
}

func TestDependencyInspector_VersionRules(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"package.json": `{
			"dependencies": {"react": "^18.2.0", "prisma": "5.0.0", "next": 15},
			"devDependencies": {"react": "^19.1.0", "typescript": "^5.4.0"}
		}`,
		"tsconfig.json": "{}",
	})

	section := inspect.NewDependencyInspector().Inspect(rc)

	react := section.PackageJSONAnalysis["react"]
	if react.Version != "^19.1.0" || !*react.MeetsRequirement {
		t.Errorf("expected devDependencies to win for react, got %+v", react)
	}
	if prisma := section.PackageJSONAnalysis["prisma"]; *prisma.MeetsRequirement {
		t.Error("prisma 5.0.0 should not meet 6.5.0")
	}
	if next := section.PackageJSONAnalysis["next"]; !next.Installed || *next.MeetsRequirement {
		t.Errorf("numeric version should be installed but fail closed, got %+v", next)
	}
	ts := section.PackageJSONAnalysis["typescript"]
	if !ts.Installed || ts.MeetsRequirement == nil || !*ts.MeetsRequirement {
		t.Errorf("technology without minimum should meet requirement, got %+v", ts)
	}
	if ts.RangeAdmitsMinimum != nil {
		t.Error("technology without minimum should not carry a range check")
	}
	if !section.TypeScriptUsage {
		t.Error("expected TypeScript usage")
	}
}

func TestDependencyInspector_NoManifest(t *testing.T) {
	rc := newRunContext(t, nil)

	section := inspect.NewDependencyInspector().Inspect(rc)
	if len(section.MissingTechnologies) != len(rc.Catalog.Technologies) {
		t.Errorf("expected all technologies missing, got %v", section.MissingTechnologies)
	}
	if section.Error != "" {
		t.Errorf("missing manifest is not an error, got %q", section.Error)
	}
	if section.TypeScriptUsage {
		t.Error("expected no TypeScript usage")
	}
	if section.DatabaseConfig.PrismaSchemaExists {
		t.Error("expected no schema")
	}
}

func TestDependencyInspector_InvalidManifest(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"package.json": `{"dependencies": {`,
	})

	section := inspect.NewDependencyInspector().Inspect(rc)
	if !strings.Contains(section.Error, "invalid JSON") {
		t.Errorf("expected parse error, got %q", section.Error)
	}
	if len(section.MissingTechnologies) != len(rc.Catalog.Technologies) {
		t.Errorf("expected all technologies missing, got %v", section.MissingTechnologies)
	}
}

func TestDependencyInspector_DatabaseConfig(t *testing.T) {
	schema := "datasource db {\n  provider = \"postgresql\"\n  schemas = [\"tenant\"]\n}\n" + strings.Repeat("ñ", 3000)
	rc := newRunContext(t, map[string]string{
		"prisma/schema.prisma": schema,
	})

	db := inspect.NewDependencyInspector().Inspect(rc).DatabaseConfig
	if !db.PrismaSchemaExists || !db.PostgreSQLConfigured || !db.MultiTenantReady {
		t.Errorf("unexpected database config: %+v", db)
	}
	if n := len([]rune(db.SchemaContent)); n != 2000 {
		t.Errorf("expected 2000-character excerpt, got %d", n)
	}
}

func TestDependencyInspector_DatabaseConfigJSON(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "no schema file",
			files: map[string]string{},
			want:  `{}`,
		},
		{
			name:  "schema without markers",
			files: map[string]string{"prisma/schema.prisma": "datasource db {\n  provider = \"sqlite\"\n}"},
			want:  `{"prisma_schema_exists":true,"postgresql_configured":false,"multi_tenant_ready":false,"schema_content":"datasource db {\n  provider = \"sqlite\"\n}"}`,
		},
		{
			name:  "empty schema file",
			files: map[string]string{"prisma/schema.prisma": ""},
			want:  `{"prisma_schema_exists":true,"postgresql_configured":false,"multi_tenant_ready":false,"schema_content":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := newRunContext(t, tt.files)
			data, err := json.Marshal(inspect.NewDependencyInspector().Inspect(rc).DatabaseConfig)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("database_config = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestDependencyInspector_EmptyVersionIsReported(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"package.json": `{"dependencies": {"next": ""}}`,
	})

	section := inspect.NewDependencyInspector().Inspect(rc)
	data, err := json.Marshal(section.PackageJSONAnalysis)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	version, ok := got["next"]["version"]
	if !ok || version != "" {
		t.Errorf("next should carry an empty version, got %s", data)
	}
	if _, ok := got["react"]["version"]; ok {
		t.Errorf("missing technology should have no version, got %v", got["react"])
	}
	if section.NextJSVersion == nil || *section.NextJSVersion != "" {
		t.Errorf("expected empty next_js_version, got %v", section.NextJSVersion)
	}
}
