// Package catalog holds the requirement catalog that drives an evaluation:
// the feature keyword tables, the technology checks, the directory manifest
// and the requirement labels used for gap analysis.
//
// A Catalog is built once (Default, Load or Parse) and treated as read-only
// afterwards; the scanning engine never mutates it.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// Catalog is the declarative description of what a compliant project contains.
type Catalog struct {
	Categories   []CategorySpec  `yaml:"categories" json:"categories"`
	Technologies []Technology    `yaml:"technologies" json:"technologies"`
	Structure    []ManifestEntry `yaml:"structure" json:"structure"`
	Requirements Requirements    `yaml:"requirements" json:"requirements"`
	Sources      SourceRules     `yaml:"sources" json:"sources"`
	Files        ConfigFiles     `yaml:"files" json:"files"`
	UI           UIRules         `yaml:"ui" json:"ui"`
	Security     SecurityRules   `yaml:"security" json:"security"`
	Business     BusinessRules   `yaml:"business" json:"business"`
}

// CategorySpec lists the features of a category in report order.
type CategorySpec struct {
	Name     Category      `yaml:"name" json:"name"`
	Features []FeatureSpec `yaml:"features" json:"features"`
}

// FeatureSpec declares a feature and, optionally, the keywords that reveal it.
type FeatureSpec struct {
	Name     Feature  `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Technology maps a tracked technology to its declared package name and an
// optional minimum version.
type Technology struct {
	Key        string `yaml:"key" json:"key"`
	Package    string `yaml:"package" json:"package"`
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
}

// Requirements are the human-readable labels checked by the gap analyzer.
type Requirements struct {
	Critical  []string `yaml:"critical" json:"critical"`
	Important []string `yaml:"important" json:"important"`
}

// SourceRules select the files the feature detector reads.
type SourceRules struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
	// Ignore holds path segments; any path containing one of them is skipped.
	Ignore []string `yaml:"ignore" json:"ignore"`
}

// ConfigFiles names the project files inspected by path.
type ConfigFiles struct {
	PackageManifest    string `yaml:"package_manifest" json:"package_manifest"`
	TypeConfig         string `yaml:"type_config" json:"type_config"`
	Schema             string `yaml:"schema" json:"schema"`
	SchemaExcerptLimit int    `yaml:"schema_excerpt_limit" json:"schema_excerpt_limit"`
	PostgresMarker     string `yaml:"postgres_marker" json:"postgres_marker"`
	MultiTenantMarker  string `yaml:"multi_tenant_marker" json:"multi_tenant_marker"`
	NextPackage        string `yaml:"next_package" json:"next_package"`
	ReactPackage       string `yaml:"react_package" json:"react_package"`
}

// GapFiles returns the files the gap analyzer searches, in order.
func (f ConfigFiles) GapFiles() []string {
	return []string{f.PackageManifest, f.TypeConfig, f.Schema}
}

// UIRules drive the UI/style inspector.
type UIRules struct {
	StyleConfigs []string `yaml:"style_configs" json:"style_configs"`
	ComponentDir string   `yaml:"component_dir" json:"component_dir"`
	Patterns     []string `yaml:"patterns" json:"patterns"`
	Responsive   []string `yaml:"responsive" json:"responsive"`
	DarkMode     []string `yaml:"dark_mode" json:"dark_mode"`
}

// Marker is a named keyword set producing one boolean.
type Marker struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// SecurityRules drive the security inspector.
type SecurityRules struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
	Markers  []Marker `yaml:"markers" json:"markers"`
}

// BusinessRules drive the business-model inspector.
type BusinessRules struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
	Plans    []string `yaml:"plans" json:"plans"`
	Pricing  []string `yaml:"pricing" json:"pricing"`
}

// Rule resolves the detection rule for key. Keys that are not declared, or
// that are declared without keywords, resolve to UnknownFeature.
func (c *Catalog) Rule(key FeatureKey) FeatureRule {
	for _, cat := range c.Categories {
		if cat.Name != key.Category {
			continue
		}
		for _, f := range cat.Features {
			if f.Name == key.Feature && len(f.Keywords) > 0 {
				return FeatureRule{Key: key, Keywords: f.Keywords}
			}
		}
	}
	return UnknownFeature
}

// Category returns the CategorySpec named name.
func (c *Catalog) Category(name Category) (CategorySpec, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return CategorySpec{}, false
}

// Marshal renders the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog. The returned value is shared and
// must not be modified.
func Default() *Catalog {
	return defaultCatalog()
}
