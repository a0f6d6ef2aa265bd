package lower_test

import (
	"testing"

	"github.com/hqlc/hql/internal/ir"
	"github.com/hqlc/hql/internal/lower"
	"github.com/hqlc/hql/internal/macro"
	"github.com/hqlc/hql/internal/reader"
)

func mustLower(t *testing.T, src string) *ir.Program {
	t.Helper()
	forms, err := reader.Read(src)
	if err != nil {
		t.Fatalf("reader.Read(%q): %v", src, err)
	}
	expanded, err := macro.Expand(forms, macro.DefaultLimits())
	if err != nil {
		t.Fatalf("macro.Expand(%q): %v", src, err)
	}
	prog, err := lower.Lower(expanded)
	if err != nil {
		t.Fatalf("lower.Lower(%q): %v", src, err)
	}
	return prog
}

func TestDefLowersToConstVariableDeclaration(t *testing.T) {
	prog := mustLower(t, `(def x 10)`)
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ir.VariableDeclaration, got %T", prog.Body[0])
	}
	if decl.Kind != ir.Const {
		t.Errorf("expected Const, got %v", decl.Kind)
	}
	if decl.ID.Name != "x" {
		t.Errorf("expected name x, got %q", decl.ID.Name)
	}
	num, ok := decl.Init.(*ir.NumericLiteral)
	if !ok || num.Value != 10 {
		t.Errorf("expected NumericLiteral(10), got %#v", decl.Init)
	}
}

func TestDefnDesugarsAndLowersToFunctionDeclaration(t *testing.T) {
	prog := mustLower(t, `(defn add (x y) (+ x y))`)
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(prog.Body))
	}
	fn, ok := prog.Body[0].(*ir.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ir.FunctionDeclaration, got %T", prog.Body[0])
	}
	if fn.ID == nil || fn.ID.Name != "add" {
		t.Fatalf("expected function named add, got %#v", fn.ID)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "x" || fn.Params[1].Name != "y" {
		t.Fatalf("unexpected params: %#v", fn.Params)
	}
	if len(fn.Body.Body) != 1 {
		t.Fatalf("expected single-statement body, got %d", len(fn.Body.Body))
	}
	ret, ok := fn.Body.Body[0].(*ir.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement, got %T", fn.Body.Body[0])
	}
	bin, ok := ret.Argument.(*ir.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected BinaryExpression(+), got %#v", ret.Argument)
	}
}

func TestNamedArgumentFunctionCollapsesParams(t *testing.T) {
	prog := mustLower(t, `
(defn subtract (x: Number y: Number) (- x y))
(subtract x: 10 y: 5)
`)
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(prog.Body))
	}

	fn, ok := prog.Body[0].(*ir.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ir.FunctionDeclaration, got %T", prog.Body[0])
	}
	if !fn.IsNamedArgs {
		t.Fatalf("expected IsNamedArgs true")
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "params" {
		t.Fatalf("expected single synthetic params param, got %#v", fn.Params)
	}
	if len(fn.NamedParams) != 2 || fn.NamedParams[0].Name != "x" || fn.NamedParams[1].Name != "y" {
		t.Fatalf("unexpected NamedParams: %#v", fn.NamedParams)
	}
	if fn.NamedParams[0].TypeAnnotation == "" || fn.NamedParams[1].TypeAnnotation == "" {
		t.Errorf("expected type annotations preserved on named params")
	}

	stmt, ok := prog.Body[1].(*ir.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ir.ExpressionStatement, got %T", prog.Body[1])
	}
	call, ok := stmt.Expression.(*ir.CallExpression)
	if !ok {
		t.Fatalf("expected *ir.CallExpression, got %T", stmt.Expression)
	}
	if !call.IsNamedArgs {
		t.Fatalf("expected call IsNamedArgs true")
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected single object-literal argument, got %d", len(call.Arguments))
	}
	obj, ok := call.Arguments[0].(*ir.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ir.ObjectLiteral argument, got %T", call.Arguments[0])
	}
	if len(obj.Properties) != 2 || obj.Properties[0].Key != "x" || obj.Properties[1].Key != "y" {
		t.Fatalf("unexpected named call properties: %#v", obj.Properties)
	}
}

func TestSetLiteralLowersToNewSetExpression(t *testing.T) {
	prog := mustLower(t, `(def empty-set #[])`)
	decl := prog.Body[0].(*ir.VariableDeclaration)
	if decl.ID.Name != "emptySet" {
		t.Errorf("expected canonicalized name emptySet, got %q", decl.ID.Name)
	}
	newExpr, ok := decl.Init.(*ir.NewExpression)
	if !ok {
		t.Fatalf("expected *ir.NewExpression, got %T", decl.Init)
	}
	callee, ok := newExpr.Callee.(*ir.Identifier)
	if !ok || callee.Name != "Set" {
		t.Fatalf("expected Set callee, got %#v", newExpr.Callee)
	}
	if len(newExpr.Arguments) != 1 {
		t.Fatalf("expected one argument, got %d", len(newExpr.Arguments))
	}
	arr, ok := newExpr.Arguments[0].(*ir.ArrayLiteral)
	if !ok || len(arr.Elements) != 0 {
		t.Fatalf("expected empty ArrayLiteral, got %#v", newExpr.Arguments[0])
	}
}

func TestDefenumKeepsMemberNamesVerbatim(t *testing.T) {
	prog := mustLower(t, `(defenum Color red green blue)`)
	decl, ok := prog.Body[0].(*ir.EnumDeclaration)
	if !ok {
		t.Fatalf("expected *ir.EnumDeclaration, got %T", prog.Body[0])
	}
	if decl.Name.Name != "Color" {
		t.Errorf("expected enum name Color, got %q", decl.Name.Name)
	}
	want := []string{"red", "green", "blue"}
	if len(decl.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(decl.Members))
	}
	for i, w := range want {
		if decl.Members[i].Name != w {
			t.Errorf("member %d: expected %q, got %q", i, w, decl.Members[i].Name)
		}
	}
}

func TestStringInterpolationBuildsTemplateLiteral(t *testing.T) {
	prog := mustLower(t, `(def g "Hello, \(name)!")`)
	decl := prog.Body[0].(*ir.VariableDeclaration)
	tmpl, ok := decl.Init.(*ir.TemplateLiteral)
	if !ok {
		t.Fatalf("expected *ir.TemplateLiteral, got %T", decl.Init)
	}
	if len(tmpl.Quasis) != 2 || len(tmpl.Expressions) != 1 {
		t.Fatalf("unexpected shape: %#v", tmpl)
	}
	if tmpl.Quasis[0] != "Hello, " || tmpl.Quasis[1] != "!" {
		t.Errorf("unexpected quasis: %#v", tmpl.Quasis)
	}
	id, ok := tmpl.Expressions[0].(*ir.Identifier)
	if !ok || id.Name != "name" {
		t.Fatalf("expected Identifier(name), got %#v", tmpl.Expressions[0])
	}
}

func TestCondBuildsRightNestedConditional(t *testing.T) {
	prog := mustLower(t, `
(cond
  (< x 0) "negative"
  (= x 0) "zero"
  :else "positive")
`)
	stmt, ok := prog.Body[0].(*ir.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ir.ExpressionStatement, got %T", prog.Body[0])
	}
	outer, ok := stmt.Expression.(*ir.ConditionalExpression)
	if !ok {
		t.Fatalf("expected *ir.ConditionalExpression, got %T", stmt.Expression)
	}
	if s, ok := outer.Consequent.(*ir.StringLiteralNode); !ok || s.Value != "negative" {
		t.Fatalf("unexpected outer consequent: %#v", outer.Consequent)
	}
	inner, ok := outer.Alternate.(*ir.ConditionalExpression)
	if !ok {
		t.Fatalf("expected nested *ir.ConditionalExpression, got %T", outer.Alternate)
	}
	if s, ok := inner.Consequent.(*ir.StringLiteralNode); !ok || s.Value != "zero" {
		t.Fatalf("unexpected inner consequent: %#v", inner.Consequent)
	}
	if s, ok := inner.Alternate.(*ir.StringLiteralNode); !ok || s.Value != "positive" {
		t.Fatalf("unexpected final alternate: %#v", inner.Alternate)
	}
}

func TestEqualityOperatorLowersToStrictEquals(t *testing.T) {
	prog := mustLower(t, `(def ok (= x 0))`)
	decl, ok := prog.Body[0].(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ir.VariableDeclaration, got %T", prog.Body[0])
	}
	bin, ok := decl.Init.(*ir.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ir.BinaryExpression, got %T", decl.Init)
	}
	if bin.Op != "===" {
		t.Fatalf("expected Op %q, got %q", "===", bin.Op)
	}
}

func TestInequalityOperatorLowersToStrictNotEquals(t *testing.T) {
	prog := mustLower(t, `(def ok (!= a b))`)
	decl, ok := prog.Body[0].(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ir.VariableDeclaration, got %T", prog.Body[0])
	}
	bin, ok := decl.Init.(*ir.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ir.BinaryExpression, got %T", decl.Init)
	}
	if bin.Op != "!==" {
		t.Fatalf("expected Op %q, got %q", "!==", bin.Op)
	}
}

func TestClassicalForLoopInitUsesLet(t *testing.T) {
	prog := mustLower(t, `(for [(def i 0) (< i 10) (set i (+ i 1))] (print i))`)
	forStmt, ok := prog.Body[0].(*ir.ForStatement)
	if !ok {
		t.Fatalf("expected *ir.ForStatement, got %T", prog.Body[0])
	}
	init, ok := forStmt.Init.(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ir.VariableDeclaration init, got %T", forStmt.Init)
	}
	if init.Kind != ir.Let {
		t.Errorf("expected Let, got %v", init.Kind)
	}
}

func TestForRangeDesugarsToCountedLoop(t *testing.T) {
	prog := mustLower(t, `(for [i (range 5)] (print i))`)
	forStmt, ok := prog.Body[0].(*ir.ForStatement)
	if !ok {
		t.Fatalf("expected *ir.ForStatement, got %T", prog.Body[0])
	}
	init, ok := forStmt.Init.(*ir.VariableDeclaration)
	if !ok || init.Kind != ir.Let {
		t.Fatalf("expected Let init, got %#v", forStmt.Init)
	}
	num, ok := init.Init.(*ir.NumericLiteral)
	if !ok || num.Value != 0 {
		t.Fatalf("expected init value 0, got %#v", init.Init)
	}
	test, ok := forStmt.Test.(*ir.BinaryExpression)
	if !ok || test.Op != "<" {
		t.Fatalf("expected < test, got %#v", forStmt.Test)
	}
}

func TestForEachLowersToForStatementWithEach(t *testing.T) {
	prog := mustLower(t, `(for [x items] (print x))`)
	forStmt, ok := prog.Body[0].(*ir.ForStatement)
	if !ok {
		t.Fatalf("expected *ir.ForStatement, got %T", prog.Body[0])
	}
	if forStmt.Each == nil {
		t.Fatalf("expected Each to be set")
	}
	if forStmt.Each.Binding.Name != "x" {
		t.Errorf("expected binding x, got %q", forStmt.Each.Binding.Name)
	}
}

func TestIdentifierCanonicalizationIsApplied(t *testing.T) {
	prog := mustLower(t, `(def my-value 1)`)
	decl := prog.Body[0].(*ir.VariableDeclaration)
	if decl.ID.Name != "myValue" {
		t.Errorf("expected myValue, got %q", decl.ID.Name)
	}
}

func TestMapLiteralKeysKeptVerbatim(t *testing.T) {
	prog := mustLower(t, `(def m {name : "Ada" "full-name" : "Ada Lovelace"})`)
	decl := prog.Body[0].(*ir.VariableDeclaration)
	obj, ok := decl.Init.(*ir.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ir.ObjectLiteral, got %T", decl.Init)
	}
	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
	if obj.Properties[0].Key != "name" {
		t.Errorf("expected key name kept verbatim, got %q", obj.Properties[0].Key)
	}
	if obj.Properties[1].Key != "full-name" {
		t.Errorf("expected key full-name kept verbatim (not canonicalized), got %q", obj.Properties[1].Key)
	}
}

func TestBareTopLevelExpressionWrapsInExpressionStatement(t *testing.T) {
	prog := mustLower(t, `(print "hi")`)
	if _, ok := prog.Body[0].(*ir.ExpressionStatement); !ok {
		t.Fatalf("expected *ir.ExpressionStatement, got %T", prog.Body[0])
	}
}

func TestLetDesugarsAndFlattensAtTopLevel(t *testing.T) {
	prog := mustLower(t, `(let (a 1 b 2) (+ a b))`)
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 flattened top-level statements, got %d", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*ir.VariableDeclaration); !ok {
		t.Fatalf("expected first statement to be a VariableDeclaration, got %T", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ir.VariableDeclaration); !ok {
		t.Fatalf("expected second statement to be a VariableDeclaration, got %T", prog.Body[1])
	}
	if _, ok := prog.Body[2].(*ir.ExpressionStatement); !ok {
		t.Fatalf("expected third statement to be an ExpressionStatement, got %T", prog.Body[2])
	}
}

func TestExportLowersSpecifiers(t *testing.T) {
	prog := mustLower(t, `(def my-func 1)
(export "myFunc" my-func)`)
	exp, ok := prog.Body[1].(*ir.ExportDeclaration)
	if !ok {
		t.Fatalf("expected *ir.ExportDeclaration, got %T", prog.Body[1])
	}
	if len(exp.Exports) != 1 {
		t.Fatalf("expected 1 export spec, got %d", len(exp.Exports))
	}
	if exp.Exports[0].Local != "myFunc" || exp.Exports[0].Exported != "myFunc" {
		t.Errorf("unexpected export spec: %#v", exp.Exports[0])
	}
}
