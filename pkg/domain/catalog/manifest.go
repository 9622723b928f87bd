package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestEntry is one path of the directory manifest together with the
// entries expected directly inside it.
type ManifestEntry struct {
	Path   string          `yaml:"path" json:"path"`
	Expect []ExpectedEntry `yaml:"expect" json:"expect"`
}

// ExpectedEntry is an expected child name. Children document the next level
// down; the structure scanner does not descend into them.
type ExpectedEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Children []string `yaml:"children,omitempty" json:"children,omitempty"`
}

// Names returns the expected child names in declaration order.
func (m ManifestEntry) Names() []string {
	names := make([]string, 0, len(m.Expect))
	for _, e := range m.Expect {
		names = append(names, e.Name)
	}
	return names
}

// UnmarshalYAML accepts either a bare name or a {name, children} mapping.
func (e *ExpectedEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Name = node.Value
		e.Children = nil
		return nil
	case yaml.MappingNode:
		type plain ExpectedEntry
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*e = ExpectedEntry(p)
		return nil
	default:
		return fmt.Errorf("line %d: expected entry must be a name or a mapping", node.Line)
	}
}

// MarshalYAML writes leaf entries back as bare names.
func (e ExpectedEntry) MarshalYAML() (interface{}, error) {
	if len(e.Children) == 0 {
		return e.Name, nil
	}
	type plain ExpectedEntry
	return plain(e), nil
}
