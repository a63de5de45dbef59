package parser

// Kind is the discriminant of a top-level Statement. Values follow the
// ESTree/Babel node type names so that allow-lists read the same regardless of
// which grammar produced the statement.
type Kind string

const (
	KindFunctionDeclaration Kind = "FunctionDeclaration"
	KindVariableDeclaration Kind = "VariableDeclaration"
	KindClassDeclaration    Kind = "ClassDeclaration"
	KindEnumDeclaration     Kind = "EnumDeclaration"

	// Flow dialect.
	KindDeclareClass         Kind = "DeclareClass"
	KindDeclareFunction      Kind = "DeclareFunction"
	KindDeclareInterface     Kind = "DeclareInterface"
	KindDeclareTypeAlias     Kind = "DeclareTypeAlias"
	KindDeclareOpaqueType    Kind = "DeclareOpaqueType"
	KindDeclareVariable      Kind = "DeclareVariable"
	KindDeclareModule        Kind = "DeclareModule"
	KindInterfaceDeclaration Kind = "InterfaceDeclaration"
	KindOpaqueType           Kind = "OpaqueType"
	KindTypeAlias            Kind = "TypeAlias"

	// TypeScript dialect.
	KindTSDeclareFunction      Kind = "TSDeclareFunction"
	KindTSInterfaceDeclaration Kind = "TSInterfaceDeclaration"
	KindTSTypeAliasDeclaration Kind = "TSTypeAliasDeclaration"
	KindTSEnumDeclaration      Kind = "TSEnumDeclaration"
	KindTSModuleDeclaration    Kind = "TSModuleDeclaration"
	KindTSExportAssignment     Kind = "TSExportAssignment"
	KindTSNamespaceExport      Kind = "TSNamespaceExportDeclaration"
	KindTSImportEquals         Kind = "TSImportEqualsDeclaration"

	KindExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindExportAllDeclaration     Kind = "ExportAllDeclaration"
	KindImportDeclaration        Kind = "ImportDeclaration"
	KindExpressionStatement      Kind = "ExpressionStatement"
	KindOther                    Kind = "Other"
)

// PatternKind tells a plain identifier binding apart from destructuring.
type PatternKind string

const (
	PatternIdentifier PatternKind = "Identifier"
	PatternObject     PatternKind = "ObjectPattern"
	PatternArray      PatternKind = "ArrayPattern"
)

type Position struct {
	Line   int
	Column int
}

type Identifier struct {
	Name     string
	Position Position
}

// Pattern is the binding target of a declarator. Name holds the identifier
// for PatternIdentifier and the raw pattern text otherwise.
type Pattern struct {
	Kind PatternKind
	Name string
}

// Declarator is one binding entry of a variable declaration (`a = 1` in
// `let a = 1, b`).
type Declarator struct {
	ID Pattern
}

// Specifier is one entry of an export list: `local as exported`.
type Specifier struct {
	Local    string
	Exported string
}

// Statement is an immutable snapshot of one top-level node. Only the fields
// relevant to Kind are populated.
type Statement struct {
	Kind     Kind
	NodeKind string // tree-sitter node kind the statement was built from
	Declare  bool   // wrapped in `declare`
	Position Position

	// Named declarations.
	ID *Identifier

	// VariableDeclaration.
	Declarations []Declarator

	// Export statements.
	Declaration *Statement
	Specifiers  []Specifier
	Source      string
}

// clone copies every slice and pointer so callers never share memory with the
// Parser's snapshot.
func (s Statement) clone() Statement {
	out := s
	if s.ID != nil {
		id := *s.ID
		out.ID = &id
	}
	if s.Declaration != nil {
		inner := s.Declaration.clone()
		out.Declaration = &inner
	}
	if s.Declarations != nil {
		out.Declarations = append([]Declarator(nil), s.Declarations...)
	}
	if s.Specifiers != nil {
		out.Specifiers = append([]Specifier(nil), s.Specifiers...)
	}
	return out
}
