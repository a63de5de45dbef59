package parser

import "strings"

// ExportNamedDeclarations returns the bare export lists (`export { a, b }`),
// i.e. named exports that carry specifiers but no inline declaration.
func (p *Parser) ExportNamedDeclarations() []Statement {
	return p.filter(func(stmt Statement) bool {
		return stmt.Kind == KindExportNamedDeclaration &&
			stmt.Declaration == nil &&
			len(stmt.Specifiers) > 0
	})
}

// NamedExportedVariables collects the names declared inline by the statements
// of ExportNamedDeclarations. Those statements never carry a declaration, so
// the result is always empty; use ExportedSpecifierNames for the names an
// export list actually re-exports.
func (p *Parser) NamedExportedVariables() ([]string, error) {
	names := []string{}
	for _, stmt := range p.ExportNamedDeclarations() {
		if stmt.Declaration == nil {
			continue
		}
		bound, err := VariableName(*stmt.Declaration)
		if err != nil {
			return nil, err
		}
		names = append(names, bound...)
	}
	return names, nil
}

// ExportedSpecifierNames returns the local names re-exported by bare export
// lists, de-duplicated in source order. Lists with a `from` clause re-export
// another module's bindings and are skipped.
func (p *Parser) ExportedSpecifierNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, stmt := range p.ExportNamedDeclarations() {
		if stmt.Source != "" {
			continue
		}
		for _, spec := range stmt.Specifiers {
			names = appendUnique(names, seen, spec.Local)
		}
	}
	return names
}

// NamedExportStatement renders `export { n1, n2 }`. An empty list renders as
// `export {  }`.
func NamedExportStatement(names []string) string {
	return "export { " + strings.Join(names, ", ") + " }"
}
