package parser

// exportableKinds lists the declaration kinds that bind a name which can be
// re-exported. Module declarations and export forms are deliberately absent.
var exportableKinds = map[Kind]struct{}{
	KindFunctionDeclaration:    {},
	KindVariableDeclaration:    {},
	KindClassDeclaration:       {},
	KindDeclareClass:           {},
	KindDeclareFunction:        {},
	KindDeclareInterface:       {},
	KindDeclareTypeAlias:       {},
	KindDeclareOpaqueType:      {},
	KindDeclareVariable:        {},
	KindInterfaceDeclaration:   {},
	KindOpaqueType:             {},
	KindTypeAlias:              {},
	KindEnumDeclaration:        {},
	KindTSDeclareFunction:      {},
	KindTSInterfaceDeclaration: {},
	KindTSTypeAliasDeclaration: {},
	KindTSEnumDeclaration:      {},
}

func IsExportable(kind Kind) bool {
	_, ok := exportableKinds[kind]
	return ok
}

// ExportableStatements returns, in source order, the statements whose kind is
// on the exportable allow-list.
func (p *Parser) ExportableStatements() []Statement {
	return p.filter(func(stmt Statement) bool {
		return IsExportable(stmt.Kind)
	})
}
