package commit

import (
	"fmt"
	"path"

	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/gobwas/glob"
)

// FileFilter keeps files whose path or base name matches a glob.
type FileFilter struct {
	pattern string
	g       glob.Glob
}

// NewFileFilter compiles pattern. An empty pattern matches everything.
func NewFileFilter(pattern string) (*FileFilter, error) {
	if pattern == "" {
		return &FileFilter{}, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file filter %q: %w", pattern, err)
	}
	return &FileFilter{pattern: pattern, g: g}, nil
}

// Match reports whether filename passes the filter.
func (f *FileFilter) Match(filename string) bool {
	if f == nil || f.g == nil {
		return true
	}
	return f.g.Match(filename) || f.g.Match(path.Base(filename))
}

// Apply returns the files that pass the filter, in order.
func (f *FileFilter) Apply(files []types.FilePatch) []types.FilePatch {
	if f == nil || f.g == nil {
		return files
	}
	out := make([]types.FilePatch, 0, len(files))
	for _, file := range files {
		if f.Match(file.Filename) {
			out = append(out, file)
		}
	}
	return out
}

func (f *FileFilter) String() string {
	if f == nil {
		return ""
	}
	return f.pattern
}
