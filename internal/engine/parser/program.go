package parser

import (
	"strings"

	"exporter/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// parseProgram parses source with the dialect's grammar and snapshots the
// top-level body. The tree is released before returning.
func parseProgram(source []byte, dialect Dialect) ([]Statement, error) {
	pool, err := PoolFor(dialect)
	if err != nil {
		return nil, err
	}
	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, source, dialect)
	}

	count := root.NamedChildCount()
	statements := make([]Statement, 0, count)
	for i := uint(0); i < count; i++ {
		node := root.NamedChild(i)
		if node == nil || node.IsExtra() {
			continue
		}
		statements = append(statements, convertStatement(node, source))
	}
	return statements, nil
}

func syntaxError(root *sitter.Node, source []byte, dialect Dialect) error {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}
	pos := positionOf(bad)
	msg := "unexpected token"
	if bad.IsMissing() {
		msg = "missing " + bad.Kind()
	} else if text := strings.TrimSpace(nodeText(bad, source)); text != "" {
		msg = "unexpected " + truncate(text, 40)
	}
	err := &errors.DomainError{Code: errors.CodeSyntax, Message: msg}
	return err.
		WithContext(errors.CtxDialect, string(dialect)).
		WithContext(errors.CtxLine, pos.Line).
		WithContext(errors.CtxColumn, pos.Column)
}

// firstErrorNode returns the first ERROR or MISSING node in document order.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

func convertStatement(node *sitter.Node, source []byte) Statement {
	stmt := Statement{
		Kind:     KindOther,
		NodeKind: node.Kind(),
		Position: positionOf(node),
	}

	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		stmt.Kind = KindFunctionDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "function_signature":
		stmt.Kind = KindTSDeclareFunction
		stmt.ID = identifierField(node, "name", source)
	case "class_declaration", "abstract_class_declaration":
		stmt.Kind = KindClassDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "lexical_declaration", "variable_declaration":
		stmt.Kind = KindVariableDeclaration
		stmt.Declarations = declarators(node, source)
	case "interface_declaration":
		stmt.Kind = KindTSInterfaceDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "type_alias_declaration":
		stmt.Kind = KindTSTypeAliasDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "enum_declaration":
		stmt.Kind = KindTSEnumDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "module", "internal_module":
		stmt.Kind = KindTSModuleDeclaration
		stmt.ID = identifierField(node, "name", source)
	case "ambient_declaration":
		stmt = convertAmbient(node, source)
	case "export_statement":
		stmt = convertExport(node, source)
	case "import_statement":
		stmt.Kind = KindImportDeclaration
		// `import x = require("y")` is an import-equals declaration.
		if hasNamedChild(node, "import_require_clause") {
			stmt.Kind = KindTSImportEquals
		}
	case "import_alias":
		stmt.Kind = KindTSImportEquals
	case "expression_statement":
		stmt.Kind = KindExpressionStatement
		// `namespace N {}` surfaces as an expression statement in some grammar versions.
		if inner := node.NamedChild(0); inner != nil && inner.Kind() == "internal_module" {
			stmt.Kind = KindTSModuleDeclaration
			stmt.ID = identifierField(inner, "name", source)
		}
	}
	return stmt
}

// convertAmbient unwraps `declare <declaration>` into the inner declaration's
// statement with Declare set. `declare global {}` and `declare module.x: T`
// have no inner declaration and are treated as module declarations.
func convertAmbient(node *sitter.Node, source []byte) Statement {
	inner := node.NamedChild(0)
	if inner == nil {
		return Statement{Kind: KindOther, NodeKind: node.Kind(), Position: positionOf(node), Declare: true}
	}
	var stmt Statement
	switch inner.Kind() {
	case "statement_block", "property_identifier":
		stmt = Statement{Kind: KindTSModuleDeclaration}
	default:
		stmt = convertStatement(inner, source)
	}
	stmt.NodeKind = node.Kind()
	stmt.Position = positionOf(node)
	stmt.Declare = true
	return stmt
}

func convertExport(node *sitter.Node, source []byte) Statement {
	stmt := Statement{
		Kind:     KindExportNamedDeclaration,
		NodeKind: node.Kind(),
		Position: positionOf(node),
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		inner := convertStatement(decl, source)
		stmt.Declaration = &inner
	}
	if src := node.ChildByFieldName("source"); src != nil {
		stmt.Source = trimQuoted(nodeText(src, source))
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default":
			stmt.Kind = KindExportDefaultDeclaration
		case "*", "namespace_export":
			stmt.Kind = KindExportAllDeclaration
		case "=":
			stmt.Kind = KindTSExportAssignment
		case "namespace":
			stmt.Kind = KindTSNamespaceExport
		case "export_clause":
			stmt.Specifiers = specifiers(child, source)
		}
	}

	if stmt.Kind != KindExportNamedDeclaration {
		stmt.Declaration = nil
		stmt.Specifiers = nil
	}
	return stmt
}

func specifiers(clause *sitter.Node, source []byte) []Specifier {
	var out []Specifier
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		local := trimQuoted(nodeText(spec.ChildByFieldName("name"), source))
		exported := local
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = trimQuoted(nodeText(alias, source))
		}
		out = append(out, Specifier{Local: local, Exported: exported})
	}
	return out
}

func declarators(node *sitter.Node, source []byte) []Declarator {
	var out []Declarator
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		pattern := Pattern{Kind: PatternIdentifier, Name: nodeText(name, source)}
		switch name.Kind() {
		case "object_pattern":
			pattern.Kind = PatternObject
		case "array_pattern":
			pattern.Kind = PatternArray
		}
		out = append(out, Declarator{ID: pattern})
	}
	return out
}

func identifierField(node *sitter.Node, field string, source []byte) *Identifier {
	name := node.ChildByFieldName(field)
	if name == nil {
		return nil
	}
	return &Identifier{Name: trimQuoted(nodeText(name, source)), Position: positionOf(name)}
}

func positionOf(node *sitter.Node) Position {
	p := node.StartPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if end > uint(len(source)) || start > end {
		return ""
	}
	return string(source[start:end])
}

func hasNamedChild(node *sitter.Node, kind string) bool {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max] + "..."
}
