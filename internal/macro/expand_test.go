package macro_test

import (
	"strings"
	"testing"

	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/macro"
	"github.com/hqlc/hql/internal/reader"
)

func mustExpand(t *testing.T, src string) []ast.Node {
	t.Helper()
	forms, err := reader.Read(src)
	if err != nil {
		t.Fatalf("reader.Read(%q): %v", src, err)
	}
	out, err := macro.Expand(forms, macro.DefaultLimits())
	if err != nil {
		t.Fatalf("Expand(%q): %v", src, err)
	}
	return out
}

var builtinMacroHeads = map[string]bool{
	"defn": true, "fx": true, "let": true, "cond": true, "for": true,
	"->": true, "when": true, "unless": true, "and": true, "or": true, "not": true,
}

// collectHeads walks n and every descendant, recording the head symbol of
// every list it finds.
func collectHeads(n ast.Node, out *[]string) {
	l, ok := n.(*ast.List)
	if !ok {
		return
	}
	if h := l.HeadSymbolName(); h != "" {
		*out = append(*out, h)
	}
	for _, el := range l.Elements {
		collectHeads(el, out)
	}
}

func assertNoMacroHeadsRemain(t *testing.T, nodes []ast.Node) {
	t.Helper()
	var heads []string
	for _, n := range nodes {
		collectHeads(n, &heads)
	}
	for _, h := range heads {
		if builtinMacroHeads[h] {
			t.Fatalf("macro head %q survived expansion in %v", h, heads)
		}
	}
}

func TestDefnDesugarsToDefun(t *testing.T) {
	out := mustExpand(t, `(defn add (x y) (+ x y))`)
	assertNoMacroHeadsRemain(t, out)
	if len(out) != 1 {
		t.Fatalf("expected 1 top-level form, got %d", len(out))
	}
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "defun" {
		t.Fatalf("expected defun, got %q", l.HeadSymbolName())
	}
	body := l.Elements[3].(*ast.List)
	if body.HeadSymbolName() != "do" {
		t.Fatalf("expected do-wrapped body, got %q", body.HeadSymbolName())
	}
}

func TestFxDesugarsToDefunTyped(t *testing.T) {
	out := mustExpand(t, `(fx add (x y) (-> Number) (+ x y))`)
	assertNoMacroHeadsRemain(t, out)
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "defun-typed" {
		t.Fatalf("expected defun-typed, got %q", l.HeadSymbolName())
	}
	returnType := l.Elements[3].(*ast.Symbol)
	if returnType.Name != "Number" {
		t.Fatalf("expected return type Number, got %q", returnType.Name)
	}
}

func TestLetDesugarsToDefSequence(t *testing.T) {
	out := mustExpand(t, `(let [x 1 y 2] (+ x y))`)
	assertNoMacroHeadsRemain(t, out)
	block := out[0].(*ast.List)
	if block.HeadSymbolName() != "do" {
		t.Fatalf("expected do block, got %q", block.HeadSymbolName())
	}
	if len(block.Elements) != 4 { // do, (def x 1), (def y 2), (+ x y)
		t.Fatalf("expected 4 elements, got %d: %+v", len(block.Elements), block.Elements)
	}
	firstDef := block.Elements[1].(*ast.List)
	if firstDef.HeadSymbolName() != "def" {
		t.Fatalf("expected def, got %q", firstDef.HeadSymbolName())
	}
}

func TestCondBuildsRightNestedIf(t *testing.T) {
	out := mustExpand(t, `(cond (< x 0) "neg" (> x 0) "pos" true "zero")`)
	assertNoMacroHeadsRemain(t, out)
	outer := out[0].(*ast.List)
	if outer.HeadSymbolName() != "if" {
		t.Fatalf("expected if, got %q", outer.HeadSymbolName())
	}
	inner := outer.Elements[3].(*ast.List)
	if inner.HeadSymbolName() != "if" {
		t.Fatalf("expected nested if, got %q", inner.HeadSymbolName())
	}
	alt := inner.Elements[3].(*ast.Literal)
	if alt.Str != "zero" {
		t.Fatalf("expected final alternate %q, got %q", "zero", alt.Str)
	}
}

func TestForClassical(t *testing.T) {
	out := mustExpand(t, `(for [(def i 0) (< i 10) (set i (+ i 1))] (print i))`)
	assertNoMacroHeadsRemain(t, out)
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "for-classical" {
		t.Fatalf("expected for-classical, got %q", l.HeadSymbolName())
	}
}

func TestForRange(t *testing.T) {
	out := mustExpand(t, `(for [i (range 10)] (print i))`)
	assertNoMacroHeadsRemain(t, out)
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "for-range" {
		t.Fatalf("expected for-range, got %q", l.HeadSymbolName())
	}
}

func TestForEach(t *testing.T) {
	out := mustExpand(t, `(for [x items] (print x))`)
	assertNoMacroHeadsRemain(t, out)
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "for-each" {
		t.Fatalf("expected for-each, got %q", l.HeadSymbolName())
	}
}

func TestThreadingMacro(t *testing.T) {
	out := mustExpand(t, `(-> x (f a) (g b))`)
	assertNoMacroHeadsRemain(t, out)
	outer := out[0].(*ast.List)
	if outer.HeadSymbolName() != "g" {
		t.Fatalf("expected outermost call g, got %q", outer.HeadSymbolName())
	}
	inner := outer.Elements[1].(*ast.List)
	if inner.HeadSymbolName() != "f" {
		t.Fatalf("expected inner call f, got %q", inner.HeadSymbolName())
	}
	innerFirstArg := inner.Elements[1].(*ast.Symbol)
	if innerFirstArg.Name != "x" {
		t.Fatalf("expected threaded value x first, got %q", innerFirstArg.Name)
	}
}

func TestWhenUnlessAndOrNot(t *testing.T) {
	cases := map[string]string{
		"(when t (f))":   "if",
		"(unless t (f))": "if",
		"(and a b)":       "&&",
		"(or a b)":        "||",
		"(not a)":         "!",
	}
	for src, wantHead := range cases {
		out := mustExpand(t, src)
		assertNoMacroHeadsRemain(t, out)
		got := out[0].(*ast.List).HeadSymbolName()
		if got != wantHead {
			t.Errorf("%s: expected head %q, got %q", src, wantHead, got)
		}
	}
}

func TestDefenumPassesThroughUnchanged(t *testing.T) {
	out := mustExpand(t, `(defenum Color Red Green Blue)`)
	l := out[0].(*ast.List)
	if l.HeadSymbolName() != "defenum" {
		t.Fatalf("expected defenum to pass through, got %q", l.HeadSymbolName())
	}
}

func TestDefmacroInstallsRuleAndProducesNoOutput(t *testing.T) {
	out := mustExpand(t, `(defmacro twice (x) `+"`"+`(+ ~x ~x))
(twice 5)`)
	if len(out) != 1 {
		t.Fatalf("expected defmacro to vanish, got %d forms: %+v", len(out), out)
	}
	call := out[0].(*ast.List)
	if call.HeadSymbolName() != "+" {
		t.Fatalf("expected expanded (+ 5 5), got head %q", call.HeadSymbolName())
	}
	left := call.Elements[1].(*ast.Literal)
	right := call.Elements[2].(*ast.Literal)
	if left.Number != 5 || right.Number != 5 {
		t.Fatalf("expected both operands substituted with 5, got %v %v", left.Number, right.Number)
	}
}

func TestDefmacroArityMismatch(t *testing.T) {
	_, err := macro.Expand(mustRead(t, `(defmacro id (x) x)
(id 1 2)`), macro.DefaultLimits())
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	me, ok := err.(*macro.Error)
	if !ok {
		t.Fatalf("expected *macro.Error, got %T", err)
	}
	if me.Kind != macro.MacroArityMismatch {
		t.Fatalf("expected MacroArityMismatch, got %v", me.Kind)
	}
}

func TestDefmacroRestParameter(t *testing.T) {
	out := mustExpand(t, `(defmacro my-list (& items) `+"`"+`[~@items])
(my-list 1 2 3)`)
	arr := out[0].(*ast.List)
	if !arr.IsArrayLiteral {
		t.Fatalf("expected an array literal, got %+v", arr)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 spliced elements, got %d", len(arr.Elements))
	}
}

func TestDefmacroHygieneRenamesMarkedSymbols(t *testing.T) {
	out := mustExpand(t, `(defmacro my-or (a b) `+"`"+`(let [tmp# ~a] (if tmp# tmp# ~b)))
(my-or x y)`)
	assertNoMacroHeadsRemain(t, out)
	do := out[0].(*ast.List)
	def := do.Elements[1].(*ast.List)
	binding := def.Elements[1].(*ast.Symbol)
	if binding.Name == "tmp#" {
		t.Fatalf("expected hygienic rename, got literal marker name %q", binding.Name)
	}
	if strings.ContainsAny(binding.Name, "%#") {
		t.Fatalf("renamed symbol %q is not a legal JavaScript identifier", binding.Name)
	}
}

func TestDuplicateParameterDetected(t *testing.T) {
	_, err := macro.Expand(mustRead(t, `(defmacro bad (x x) x)`), macro.DefaultLimits())
	if err == nil {
		t.Fatal("expected a duplicate parameter error")
	}
	me, ok := err.(*macro.Error)
	if !ok || me.Kind != macro.DuplicateParameter {
		t.Fatalf("expected DuplicateParameter, got %v", err)
	}
}

func TestQuoteProducesLiteralData(t *testing.T) {
	out := mustExpand(t, `(quote (a b c))`)
	arr := out[0].(*ast.List)
	if !arr.IsArrayLiteral {
		t.Fatalf("expected array literal, got %+v", arr)
	}
	for _, el := range arr.Elements {
		lit, ok := el.(*ast.Literal)
		if !ok || lit.Kind != ast.StringLiteral {
			t.Fatalf("expected quoted symbols to become string literals, got %T", el)
		}
	}
}

func TestRecursiveMacroCallsFullyExpand(t *testing.T) {
	out := mustExpand(t, `(when (> x 0) (when (> y 0) (f x y)))`)
	assertNoMacroHeadsRemain(t, out)
}

func mustRead(t *testing.T, src string) []ast.Node {
	t.Helper()
	forms, err := reader.Read(src)
	if err != nil {
		t.Fatalf("reader.Read(%q): %v", src, err)
	}
	return forms
}
