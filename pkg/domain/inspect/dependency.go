package inspect

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
	"github.com/tidwall/gjson"
)

// DependencyInspector checks declared packages against the technology table,
// plus the type-config and schema-definition files.
type DependencyInspector struct{}

// NewDependencyInspector creates a new DependencyInspector.
func NewDependencyInspector() *DependencyInspector {
	return &DependencyInspector{}
}

func (d *DependencyInspector) Inspect(rc *RunContext) evaluation.TechStackSection {
	files := rc.Catalog.Files
	section := evaluation.TechStackSection{
		PackageJSONAnalysis: make(map[string]evaluation.TechStatus),
		MissingTechnologies: []string{},
	}

	deps, err := d.declaredDependencies(rc, files.PackageManifest)
	if err != nil {
		section.Error = err.Error()
	}

	for _, tech := range rc.Catalog.Technologies {
		declared, ok := deps[tech.Package]
		if !ok {
			section.PackageJSONAnalysis[tech.Key] = evaluation.TechStatus{Installed: false}
			section.MissingTechnologies = append(section.MissingTechnologies, tech.Key)
			continue
		}

		version := declared.String()
		meets := true
		status := evaluation.TechStatus{Installed: true, Version: version}
		if tech.MinVersion != "" {
			// Non-string versions cannot be compared and fail closed.
			meets = declared.Type == gjson.String && evaluation.MeetsMinimum(version, tech.MinVersion)
			if admits, parsed := evaluation.RangeAdmits(version, tech.MinVersion); parsed {
				status.RangeAdmitsMinimum = &admits
			}
		}
		status.MeetsRequirement = &meets
		section.PackageJSONAnalysis[tech.Key] = status
	}

	if r, ok := deps[files.NextPackage]; ok && files.NextPackage != "" {
		v := r.String()
		section.NextJSVersion = &v
	}
	if r, ok := deps[files.ReactPackage]; ok && files.ReactPackage != "" {
		v := r.String()
		section.ReactVersion = &v
	}

	section.TypeScriptUsage = rc.Exists(files.TypeConfig)
	section.DatabaseConfig = d.databaseConfig(rc)

	return section
}

// declaredDependencies merges dependencies and devDependencies; on a key
// collision the devDependencies entry wins. A missing manifest yields an
// empty lookup and no error.
func (d *DependencyInspector) declaredDependencies(rc *RunContext, manifest string) (map[string]gjson.Result, error) {
	deps := make(map[string]gjson.Result)
	if !rc.Exists(manifest) {
		return deps, nil
	}

	res := rc.Read(manifest)
	if !res.OK() {
		return deps, fmt.Errorf("failed to read %s: %s", manifest, res.Skip)
	}
	if !gjson.Valid(res.Text) {
		return deps, fmt.Errorf("failed to parse %s: invalid JSON", manifest)
	}

	doc := gjson.Parse(res.Text)
	if !doc.IsObject() {
		return deps, fmt.Errorf("failed to parse %s: top-level value is not an object", manifest)
	}
	for _, key := range []string{"dependencies", "devDependencies"} {
		group := doc.Get(key)
		if !group.IsObject() {
			continue
		}
		group.ForEach(func(name, version gjson.Result) bool {
			deps[name.String()] = version
			return true
		})
	}
	return deps, nil
}

func (d *DependencyInspector) databaseConfig(rc *RunContext) evaluation.DatabaseConfig {
	files := rc.Catalog.Files
	if !rc.Exists(files.Schema) {
		return evaluation.DatabaseConfig{}
	}

	res := rc.Read(files.Schema)
	if !res.OK() {
		return evaluation.DatabaseConfig{Error: fmt.Sprintf("failed to read %s: %s", files.Schema, res.Skip)}
	}

	lower := strings.ToLower(res.Text)
	return evaluation.DatabaseConfig{
		PrismaSchemaExists:   true,
		PostgreSQLConfigured: files.PostgresMarker != "" && strings.Contains(lower, strings.ToLower(files.PostgresMarker)),
		MultiTenantReady:     files.MultiTenantMarker != "" && strings.Contains(lower, strings.ToLower(files.MultiTenantMarker)),
		SchemaContent:        excerpt(res.Text, files.SchemaExcerptLimit),
	}
}

// excerpt returns the first limit characters of s.
func excerpt(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
