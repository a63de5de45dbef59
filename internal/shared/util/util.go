package util

import (
	"path"
	"path/filepath"
	"strings"
)

// NormalizePatternPath cleans and normalizes paths for matcher/pattern usage.
func NormalizePatternPath(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// RelativePatternPath returns target relative to root in pattern form, or the
// normalized target when it is not under root.
func RelativePatternPath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NormalizePatternPath(filepath.ToSlash(target))
	}
	return NormalizePatternPath(filepath.ToSlash(rel))
}
