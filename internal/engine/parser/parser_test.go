package parser

import (
	goerrors "errors"
	"reflect"
	"testing"

	"exporter/internal/core/errors"
)

func mustParse(t *testing.T, src string, opts ...Option) *Parser {
	t.Helper()
	p, err := New(src, opts...)
	if err != nil {
		t.Fatalf("New(%q): %v", src, err)
	}
	return p
}

func kinds(stmts []Statement) []Kind {
	out := make([]Kind, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, stmt.Kind)
	}
	return out
}

func TestNew_StatementKinds(t *testing.T) {
	src := `
// leading comment
import { dep } from "./dep";
function f() {}
function* gen() {}
class C {}
abstract class Base {}
let a = 1;
var v;
interface I { x: number }
type T = string;
enum E { A, B }
function sig(): void;
namespace N {}
export { a };
export const c = 1;
export default function () {}
export * from "./other";
console.log(a);
`
	p := mustParse(t, src)

	want := []Kind{
		KindImportDeclaration,
		KindFunctionDeclaration,
		KindFunctionDeclaration,
		KindClassDeclaration,
		KindClassDeclaration,
		KindVariableDeclaration,
		KindVariableDeclaration,
		KindTSInterfaceDeclaration,
		KindTSTypeAliasDeclaration,
		KindTSEnumDeclaration,
		KindTSDeclareFunction,
		KindTSModuleDeclaration,
		KindExportNamedDeclaration,
		KindExportNamedDeclaration,
		KindExportDefaultDeclaration,
		KindExportAllDeclaration,
		KindExpressionStatement,
	}
	if got := kinds(p.Statements()); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestNew_AmbientDeclarations(t *testing.T) {
	src := `
declare function df(x: number): string;
declare const dc: number;
declare class DC {}
declare interface DI {}
declare type DT = number;
declare enum DE { A }
declare module "ext" {}
declare global {}
`
	p := mustParse(t, src)
	stmts := p.Statements()

	want := []Kind{
		KindTSDeclareFunction,
		KindVariableDeclaration,
		KindClassDeclaration,
		KindTSInterfaceDeclaration,
		KindTSTypeAliasDeclaration,
		KindTSEnumDeclaration,
		KindTSModuleDeclaration,
		KindTSModuleDeclaration,
	}
	if got := kinds(stmts); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
	for _, stmt := range stmts {
		if !stmt.Declare {
			t.Errorf("expected Declare on %s (%s)", stmt.Kind, stmt.NodeKind)
		}
	}

	names, err := p.ExportableNames()
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"df", "dc", "DC", "DI", "DT", "DE"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("names = %v, want %v", names, wantNames)
	}
}

func TestNew_SyntaxError(t *testing.T) {
	for _, src := range []string{
		"function {",
		"export { a, ",
		"let a = 1;\nconst = 2;",
	} {
		p, err := New(src)
		if err == nil {
			t.Errorf("expected error for %q", src)
			continue
		}
		if p != nil {
			t.Errorf("expected nil parser for %q", src)
		}
		if !errors.IsCode(err, errors.CodeSyntax) {
			t.Errorf("expected SYNTAX_ERROR for %q, got %v", src, err)
		}
		var de *errors.DomainError
		if goerrors.As(err, &de) {
			if _, has := de.Context[errors.CtxLine]; !has {
				t.Errorf("expected line context for %q", src)
			}
		}
	}
}

func TestNew_Dialects(t *testing.T) {
	typed := "let a: number = 1;"
	if _, err := New(typed, WithDialect(DialectJavaScript)); !errors.IsCode(err, errors.CodeSyntax) {
		t.Errorf("expected javascript dialect to reject type annotations, got %v", err)
	}
	if _, err := New(typed); err != nil {
		t.Errorf("expected default dialect to accept type annotations: %v", err)
	}

	jsx := "const el = <div>hi</div>;"
	p := mustParse(t, jsx, WithDialect(DialectTSX))
	if p.Dialect() != DialectTSX {
		t.Errorf("expected tsx dialect, got %s", p.Dialect())
	}
	mustParse(t, jsx, WithDialect(DialectJavaScript))

	if _, err := New("let a;", WithDialect(Dialect("coffeescript"))); !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("expected NOT_SUPPORTED for unknown dialect, got %v", err)
	}
}

func TestExportableStatements_PreservesOrder(t *testing.T) {
	src := `
import x from "x";
class B {}
export { B };
function a() {}
namespace Skip {}
type T = number;
x();
let z;
`
	p := mustParse(t, src)
	got := p.ExportableStatements()

	want := []Kind{KindClassDeclaration, KindFunctionDeclaration, KindTSTypeAliasDeclaration, KindVariableDeclaration}
	if !reflect.DeepEqual(kinds(got), want) {
		t.Fatalf("kinds = %v, want %v", kinds(got), want)
	}

	// Output must be a subsequence of Statements().
	all := p.Statements()
	j := 0
	for _, stmt := range all {
		if j < len(got) && reflect.DeepEqual(stmt, got[j]) {
			j++
		}
	}
	if j != len(got) {
		t.Error("exportable statements are not an ordered subsequence of the program")
	}
}

func TestIsExportable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindFunctionDeclaration, true},
		{KindInterfaceDeclaration, true},
		{KindTSInterfaceDeclaration, true},
		{KindDeclareOpaqueType, true},
		{KindOpaqueType, true},
		{KindTSDeclareFunction, true},
		{KindTSModuleDeclaration, false},
		{KindDeclareModule, false},
		{KindExportNamedDeclaration, false},
		{KindExpressionStatement, false},
		{KindOther, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := IsExportable(tt.kind); got != tt.want {
				t.Errorf("IsExportable(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestExportNamedDeclarations(t *testing.T) {
	src := `
const a = 1, b = 2;
export { a, b };
export const c = 1;
export {};
export { a as alias } from "./mod";
`
	p := mustParse(t, src)
	got := p.ExportNamedDeclarations()
	if len(got) != 2 {
		t.Fatalf("expected 2 bare export lists, got %d: %+v", len(got), got)
	}

	first := got[0]
	wantSpecs := []Specifier{{Local: "a", Exported: "a"}, {Local: "b", Exported: "b"}}
	if !reflect.DeepEqual(first.Specifiers, wantSpecs) {
		t.Errorf("specifiers = %+v, want %+v", first.Specifiers, wantSpecs)
	}
	if first.Declaration != nil {
		t.Error("expected no inline declaration")
	}

	second := got[1]
	if second.Source != "./mod" {
		t.Errorf("expected source ./mod, got %q", second.Source)
	}
	if second.Specifiers[0].Exported != "alias" {
		t.Errorf("expected alias export, got %+v", second.Specifiers[0])
	}
}

func TestExportNamedDeclarations_OnlyBareForm(t *testing.T) {
	p := mustParse(t, "export { a, b };\nexport const c = 1;")
	got := p.ExportNamedDeclarations()
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(got))
	}
	if got[0].Position.Line != 1 {
		t.Errorf("expected the statement on line 1, got line %d", got[0].Position.Line)
	}

	inline := p.Statements()[1]
	if inline.Declaration == nil || inline.Declaration.Kind != KindVariableDeclaration {
		t.Fatalf("expected inline variable declaration, got %+v", inline.Declaration)
	}
}

// NamedExportedVariables filters bare export lists for an inline declaration,
// which they never have; the result is empty even when export lists exist.
func TestNamedExportedVariables_AlwaysEmpty(t *testing.T) {
	p := mustParse(t, "let a, b;\nexport { a, b };\nexport const c = 1;")
	got, err := p.NamedExportedVariables()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestExportedSpecifierNames(t *testing.T) {
	src := `
export { a, b as bee };
export { a, c };
export { d } from "./elsewhere";
`
	p := mustParse(t, src)
	want := []string{"a", "b", "c"}
	if got := p.ExportedSpecifierNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExportedSpecifierNames() = %v, want %v", got, want)
	}
}

func TestEndToEnd(t *testing.T) {
	p := mustParse(t, "function f(){} let a, b; export { x, y };")

	exportable := p.ExportableStatements()
	if len(exportable) != 2 {
		t.Fatalf("expected 2 exportable declarations, got %d", len(exportable))
	}

	names, err := VariablesName(exportable)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"f", "a", "b"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	if got := NamedExportStatement(names); got != "export { f, a, b }" {
		t.Errorf("statement = %q", got)
	}
}

func TestStatements_ReturnsIndependentCopies(t *testing.T) {
	p := mustParse(t, "let a, b;\nexport { a };\nexport const c = 1;")

	stmts := p.Statements()
	stmts[0].Declarations[0].ID.Name = "changed"
	stmts[1].Specifiers[0].Local = "changed"
	stmts[2].Declaration.Declarations[0].ID.Name = "changed"

	exportable := p.ExportableStatements()
	exportable[0].Declarations[1].ID.Name = "changed"
	lists := p.ExportNamedDeclarations()
	lists[0].Specifiers[0].Local = "changed"

	names, err := p.ExportableNames()
	if err != nil {
		t.Fatalf("ExportableNames: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if got, want := p.ExportedSpecifierNames(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("specifier names = %v, want %v", got, want)
	}
	if got := p.Statements()[2].Declaration.Declarations[0].ID.Name; got != "c" {
		t.Errorf("nested declaration name = %q, want c", got)
	}
}

func TestNew_FallbackDialect(t *testing.T) {
	typed := "let a: number = 1;"
	p := mustParse(t, typed, WithDialect(DialectJavaScript), WithFallback(DialectTypeScript))
	if p.Dialect() != DialectTypeScript {
		t.Errorf("expected fallback to typescript, got %s", p.Dialect())
	}

	jsx := "const el = <div>hi</div>;"
	p = mustParse(t, jsx, WithDialect(DialectJavaScript), WithFallback(DialectTypeScript))
	if p.Dialect() != DialectJavaScript {
		t.Errorf("expected javascript to parse jsx without fallback, got %s", p.Dialect())
	}

	if _, err := New("let = ;", WithDialect(DialectJavaScript), WithFallback(DialectTypeScript)); !errors.IsCode(err, errors.CodeSyntax) {
		t.Errorf("expected SYNTAX_ERROR when both grammars fail, got %v", err)
	}
}

func TestNew_ImportEquals(t *testing.T) {
	p := mustParse(t, "import fs = require(\"fs\");\nimport Alias = NS.Inner;\nimport { x } from \"x\";")
	want := []Kind{KindTSImportEquals, KindTSImportEquals, KindImportDeclaration}
	if got := kinds(p.Statements()); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if len(p.ExportableStatements()) != 0 {
		t.Error("import declarations must not be exportable")
	}
}
