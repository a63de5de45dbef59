package parser

import (
	"exporter/internal/core/errors"
)

// VariableName returns the names bound by an exportable declaration: one per
// declarator for variable declarations, otherwise the declaration's own id.
func VariableName(stmt Statement) ([]string, error) {
	if stmt.Kind == KindVariableDeclaration {
		names := make([]string, 0, len(stmt.Declarations))
		for _, decl := range stmt.Declarations {
			if decl.ID.Kind != PatternIdentifier {
				return nil, bindingError(stmt, errors.CodeNotSupported, "unsupported binding pattern", decl.ID.Name)
			}
			names = append(names, decl.ID.Name)
		}
		return names, nil
	}

	if stmt.ID == nil || stmt.ID.Name == "" {
		return nil, bindingError(stmt, errors.CodeValidationError, "missing identifier", string(stmt.Kind))
	}
	return []string{stmt.ID.Name}, nil
}

// VariablesName flattens VariableName over stmts, keeping the first occurrence
// of each name.
func VariablesName(stmts []Statement) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, stmt := range stmts {
		bound, err := VariableName(stmt)
		if err != nil {
			return nil, err
		}
		for _, name := range bound {
			names = appendUnique(names, seen, name)
		}
	}
	return names, nil
}

func bindingError(stmt Statement, code errors.ErrorCode, msg, symbol string) error {
	err := &errors.DomainError{Code: code, Message: msg}
	return err.
		WithContext(errors.CtxSymbol, symbol).
		WithContext(errors.CtxLine, stmt.Position.Line).
		WithContext(errors.CtxColumn, stmt.Position.Column)
}

func appendUnique(values []string, seen map[string]bool, value string) []string {
	if seen[value] {
		return values
	}
	seen[value] = true
	return append(values, value)
}

// ExportableNames is VariablesName over ExportableStatements.
func (p *Parser) ExportableNames() ([]string, error) {
	return VariablesName(p.ExportableStatements())
}
