package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var catalogSchemaJSON string

var catalogSchemaLoader = gojsonschema.NewStringLoader(catalogSchemaJSON)

// ErrInvalidCatalog is returned when a catalog document fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Load reads and validates a catalog file.
func Load(file string) (*Catalog, error) {
	// #nosec G304 -- catalog path is supplied by the operator
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document, checks it against the catalog JSON
// schema and then against the rules the schema cannot express.
func Parse(data []byte) (*Catalog, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	result, err := gojsonschema.Validate(catalogSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if !result.Valid() {
		var errs error
		for _, desc := range result.Errors() {
			errs = multierr.Append(errs, errors.New(desc.String()))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errs)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	c.normalize()
	return &c, nil
}

// Validate reports every structural problem the schema does not catch.
func (c *Catalog) Validate() error {
	var errs error

	categories := make(map[Category]bool)
	for _, cat := range c.Categories {
		if categories[cat.Name] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate category %q", cat.Name))
		}
		categories[cat.Name] = true

		features := make(map[Feature]bool)
		for _, f := range cat.Features {
			if features[f.Name] {
				errs = multierr.Append(errs, fmt.Errorf("duplicate feature %q in category %q", f.Name, cat.Name))
			}
			features[f.Name] = true
		}
	}

	techs := make(map[string]bool)
	for _, t := range c.Technologies {
		if techs[t.Key] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate technology %q", t.Key))
		}
		techs[t.Key] = true
	}

	paths := make(map[string]bool)
	for _, m := range c.Structure {
		p := path.Clean(m.Path)
		if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
			errs = multierr.Append(errs, fmt.Errorf("manifest path %q must stay inside the project", m.Path))
		}
		if paths[p] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate manifest path %q", m.Path))
		}
		paths[p] = true
	}

	return errs
}

func (c *Catalog) normalize() {
	for i := range c.Structure {
		c.Structure[i].Path = path.Clean(c.Structure[i].Path)
	}
}
