package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternFilter decides which changes trigger a re-evaluation. Paths are
// relative to the project root.
type PatternFilter struct {
	// Include holds doublestar globs; an empty list admits every path.
	Include []string
	// Exclude holds exact relative paths, such as the report file.
	Exclude []string
	// Segments drops any path containing one of them, such as node_modules.
	Segments []string
}

// NewPatternFilter creates a filter from doublestar include and exclude
// patterns plus directory segments to skip.
func NewPatternFilter(include, exclude, segments []string) *PatternFilter {
	return &PatternFilter{
		Include:  include,
		Exclude:  exclude,
		Segments: segments,
	}
}

// Matches reports whether a change to path should be acted on.
func (f *PatternFilter) Matches(path string) bool {
	path = filepath.ToSlash(path)

	for _, ex := range f.Exclude {
		if path == filepath.ToSlash(ex) {
			return false
		}
	}
	if f.SkipDir(path) {
		return false
	}

	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// SkipDir reports whether a directory should not be watched at all.
func (f *PatternFilter) SkipDir(path string) bool {
	path = filepath.ToSlash(path)
	for _, seg := range f.Segments {
		if seg != "" && strings.Contains(path, seg) {
			return true
		}
	}
	return false
}
