package inspect

import (
	"sort"
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// StructureScanner compares the directory manifest with the project tree.
// Only the immediate children of each manifest path are compared.
type StructureScanner struct{}

// NewStructureScanner creates a new StructureScanner.
func NewStructureScanner() *StructureScanner {
	return &StructureScanner{}
}

func (s *StructureScanner) Scan(rc *RunContext) evaluation.StructureSection {
	section := evaluation.StructureSection{
		SrcStructure:       make(map[string]evaluation.PathStatus),
		MissingDirectories: []string{},
		ExtraDirectories:   []string{},
	}

	seen := make(map[string]bool)
	for _, entry := range rc.Catalog.Structure {
		if seen[entry.Path] {
			continue
		}
		seen[entry.Path] = true

		info, err := rc.Workspace.Stat(entry.Path)
		if err != nil {
			section.MissingDirectories = append(section.MissingDirectories, entry.Path)
			continue
		}

		status := evaluation.PathStatus{Exists: true, Type: "file"}
		if info.IsDir() {
			status.Type = "directory"
			status.Content = s.compare(rc, entry.Path, entry.Names())
		} else {
			status.Content = evaluation.DirContent{Error: "Not a directory"}
		}
		section.SrcStructure[entry.Path] = status
	}

	return section
}

func (s *StructureScanner) compare(rc *RunContext, dir string, expected []string) evaluation.DirContent {
	entries, err := rc.Workspace.ReadDir(dir)
	if err != nil {
		return evaluation.DirContent{ExpectedItems: expected, Error: err.Error()}
	}

	actual := make([]string, 0, len(entries))
	isDir := make(map[string]bool, len(entries))
	for _, e := range entries {
		actual = append(actual, e.Name())
		isDir[e.Name()] = e.IsDir()
	}
	sort.Strings(actual)

	content := evaluation.DirContent{
		ExpectedItems: expected,
		ActualItems:   actual,
		MissingItems:  []string{},
		PresentItems:  []string{},
		ExtraItems:    []string{},
	}

	claimed := make(map[string]bool)
	for _, want := range expected {
		name, wantDir := strings.CutSuffix(want, "/")
		present := false
		if d, ok := isDir[name]; ok && (!wantDir || d) {
			present = true
			claimed[name] = true
		}
		if present {
			content.PresentItems = append(content.PresentItems, want)
		} else {
			content.MissingItems = append(content.MissingItems, want)
		}
	}

	for _, name := range actual {
		if !claimed[name] {
			content.ExtraItems = append(content.ExtraItems, name)
		}
	}

	return content
}
