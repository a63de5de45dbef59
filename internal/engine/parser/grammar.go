package parser

import (
	"path/filepath"
	"sort"
	"strings"

	"exporter/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Dialect selects the grammar a document is parsed with.
type Dialect string

const (
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
	DialectJavaScript Dialect = "javascript"
)

var dialectExtensions = map[string]Dialect{
	".ts":  DialectTypeScript,
	".mts": DialectTypeScript,
	".cts": DialectTypeScript,
	".tsx": DialectTSX,
	".js":  DialectJavaScript,
	".mjs": DialectJavaScript,
	".cjs": DialectJavaScript,
	".jsx": DialectJavaScript,
}

// grammars is built once; sitter.Language values are immutable and shared.
var grammars = map[Dialect]*sitter.Language{
	DialectTypeScript: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	DialectTSX:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
	DialectJavaScript: sitter.NewLanguage(tree_sitter_javascript.Language()),
}

func languageFor(d Dialect) (*sitter.Language, error) {
	lang, ok := grammars[d]
	if !ok {
		err := &errors.DomainError{Code: errors.CodeNotSupported, Message: "unknown dialect"}
		return nil, err.WithContext(errors.CtxDialect, string(d))
	}
	return lang, nil
}

// ParseDialect maps a configured dialect name to a Dialect. "ts", "js" and
// "jsx" are accepted as aliases.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts":
		return DialectTypeScript, nil
	case "tsx":
		return DialectTSX, nil
	case "javascript", "js", "jsx":
		return DialectJavaScript, nil
	}
	return "", errors.Newf(errors.CodeValidationError, "unknown dialect %q", name)
}

// DialectForPath detects the dialect from a file extension.
func DialectForPath(path string) (Dialect, bool) {
	d, ok := dialectExtensions[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// SupportedExtensions returns every extension DialectForPath recognizes.
func SupportedExtensions() []string {
	out := make([]string, 0, len(dialectExtensions))
	for ext := range dialectExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
