package app

import (
	"path/filepath"
	"strings"

	"exporter/internal/core/errors"
	"exporter/internal/shared/util"

	"github.com/gobwas/glob"
)

// pathFilter applies include/exclude globs to paths relative to the scan root
// that contains them.
type pathFilter struct {
	include []glob.Glob
	exclude []glob.Glob
	roots   []string
}

func newPathFilter(include, exclude []string) (*pathFilter, error) {
	f := &pathFilter{}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, "invalid include pattern "+pattern)
		}
		f.include = append(f.include, g)
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, "invalid exclude pattern "+pattern)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

func (f *pathFilter) setRoots(roots []string) {
	f.roots = f.roots[:0]
	for _, root := range roots {
		if abs, err := filepath.Abs(root); err == nil {
			f.roots = append(f.roots, abs)
		}
	}
}

// rel returns path relative to the deepest root containing it.
func (f *pathFilter) rel(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return util.NormalizePatternPath(filepath.ToSlash(path))
	}
	best := ""
	for _, root := range f.roots {
		if (abs == root || strings.HasPrefix(abs, root+string(filepath.Separator))) && len(root) > len(best) {
			best = root
		}
	}
	if best == "" {
		return util.NormalizePatternPath(filepath.ToSlash(path))
	}
	return util.RelativePatternPath(best, abs)
}

func (f *pathFilter) SkipDir(path string) bool {
	rel := f.rel(path)
	if rel == "" {
		return false
	}
	return matchAny(f.exclude, rel+"/")
}

func (f *pathFilter) Match(path string) bool {
	rel := f.rel(path)
	if !matchAny(f.include, rel) || matchAny(f.exclude, rel) {
		return false
	}
	return true
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}
	return false
}
