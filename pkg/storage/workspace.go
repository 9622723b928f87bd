package storage

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
)

// DefaultIgnoreFile is the optional gitignore-style file read from the
// project root.
const DefaultIgnoreFile = ".stackauditignore"

// Workspace is a read-only inspect.Workspace over a project directory.
type Workspace struct {
	root       string
	fsys       fs.FS
	segments   []string
	ignoreFile string
	matcher    gitignore.GitIgnore
}

type WorkspaceOption func(*Workspace)

// WithIgnoreSegments sets the path segments excluded from ignore-aware
// queries. Any path containing one of them is dropped.
func WithIgnoreSegments(segments ...string) WorkspaceOption {
	return func(w *Workspace) {
		w.segments = append([]string{}, segments...)
	}
}

// WithIgnoreFile overrides the name of the project ignore file. An empty
// name disables it.
func WithIgnoreFile(name string) WorkspaceOption {
	return func(w *Workspace) {
		w.ignoreFile = name
	}
}

// NewWorkspace opens the project rooted at root.
func NewWorkspace(root string, opts ...WorkspaceOption) *Workspace {
	return NewWorkspaceFS(os.DirFS(root), root, opts...)
}

// NewWorkspaceFS builds a workspace over an arbitrary file system. root is
// only used to anchor the project ignore file.
func NewWorkspaceFS(fsys fs.FS, root string, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		root:       root,
		fsys:       fsys,
		ignoreFile: DefaultIgnoreFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.matcher = w.loadIgnoreFile()
	return w
}

func (w *Workspace) loadIgnoreFile() gitignore.GitIgnore {
	if w.ignoreFile == "" {
		return nil
	}
	data, err := fs.ReadFile(w.fsys, w.ignoreFile)
	if err != nil {
		return nil
	}
	return gitignore.New(bytes.NewReader(data), w.root, func(gitignore.Error) bool { return true })
}

// Root returns the project root the workspace was opened on.
func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) Stat(name string) (fs.FileInfo, error) {
	p, err := clean(name)
	if err != nil {
		return nil, err
	}
	return fs.Stat(w.fsys, p)
}

func (w *Workspace) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := clean(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(w.fsys, p)
}

// ReadText reads a file as text. Binary content (any NUL byte) is skipped;
// invalid UTF-8 sequences are dropped.
func (w *Workspace) ReadText(name string) inspect.FileResult {
	res := inspect.FileResult{Path: name}

	p, err := clean(name)
	if err != nil {
		res.Skip = inspect.SkipUnreadable
		return res
	}
	info, err := fs.Stat(w.fsys, p)
	if err != nil {
		res.Skip = inspect.SkipUnreadable
		return res
	}
	if info.IsDir() {
		res.Skip = inspect.SkipNotFile
		return res
	}

	data, err := fs.ReadFile(w.fsys, p)
	if err != nil {
		res.Skip = inspect.SkipUnreadable
		return res
	}
	if bytes.IndexByte(data, 0) >= 0 {
		res.Skip = inspect.SkipBinary
		return res
	}

	res.Text = strings.ToValidUTF8(string(data), "")
	return res
}

// Files walks the tree once and returns the files matching any pattern.
// With ApplyIgnores, ignored directories are pruned from the walk.
func (w *Workspace) Files(q inspect.FileQuery) []string {
	var out []string
	_ = fs.WalkDir(w.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			return nil
		}
		if p == "." {
			return nil
		}
		if q.ApplyIgnores && w.ignored(p, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range q.Patterns {
			if ok, _ := doublestar.Match(pattern, p); ok {
				out = append(out, p)
				break
			}
		}
		return nil
	})
	sort.Strings(out)
	return out
}

func (w *Workspace) ignored(p string, isDir bool) bool {
	for _, seg := range w.segments {
		if seg != "" && strings.Contains(p, seg) {
			return true
		}
	}
	if w.matcher != nil {
		if m := w.matcher.Relative(filepath.FromSlash(p), isDir); m != nil && m.Ignore() {
			return true
		}
	}
	return false
}

func clean(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "./"))
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid workspace path: %s", name)
	}
	return p, nil
}
