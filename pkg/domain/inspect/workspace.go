// Package inspect contains the components of an evaluation run. Each
// component reads the project through a Workspace and returns exactly one
// section of the evaluation record; none of them reads another's output.
package inspect

import "io/fs"

// SkipReason explains why a file's text was not used.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipUnreadable SkipReason = "unreadable"
	SkipBinary     SkipReason = "binary"
	SkipNotFile    SkipReason = "not_a_file"
)

// FileResult is the outcome of a best-effort text read.
type FileResult struct {
	Path string
	Text string
	Skip SkipReason
}

// OK reports whether the text is usable.
func (r FileResult) OK() bool {
	return r.Skip == SkipNone
}

// FileQuery selects files by glob pattern relative to the project root.
type FileQuery struct {
	// Patterns are doublestar globs such as "**/*.tsx".
	Patterns []string
	// ApplyIgnores drops paths that contain an ignored segment or that match
	// the project's ignore file.
	ApplyIgnores bool
}

// Workspace is the read-only view of the project under evaluation. All paths
// are slash-separated and relative to the project root.
type Workspace interface {
	// Stat returns file info, or an error when the path does not exist.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists the immediate children of a directory, sorted by name.
	ReadDir(path string) ([]fs.DirEntry, error)
	// ReadText reads a file as text. It never fails; problems are reported
	// through FileResult.Skip.
	ReadText(path string) FileResult
	// Files returns the regular files matching q, sorted and de-duplicated.
	Files(q FileQuery) []string
}
