package macro

import "github.com/hqlc/hql/internal/ast"

func sym(pos ast.Node, name string) *ast.Symbol {
	return ast.NewSymbol(pos.Pos(), name)
}

func list(pos ast.Node, elems ...ast.Node) *ast.List {
	return ast.NewList(pos.Pos(), elems)
}

// wrapBody wraps zero or more body forms in a single `do` block, matching
// the shape internal/lower expects for a function/loop body (spec.md
// §4.B, §4.C).
func wrapBody(pos ast.Node, forms []ast.Node) ast.Node {
	return list(pos, append([]ast.Node{sym(pos, "do")}, forms...)...)
}

// expandDefn rewrites `(defn name (params...) body...)` to
// `(defun name (params...) (do body...))` (spec.md §4.B).
func expandDefn(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 3 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "defn requires a name and a parameter list"}
	}
	name := call.Elements[1]
	params := call.Elements[2]
	body := call.Elements[3:]
	return list(call, sym(call, "defun"), name, params, wrapBody(call, body)), nil
}

// expandFx rewrites `(fx name (params...) (-> T) body...)` to
// `(defun-typed name (params...) T (do body...))` (spec.md §4.B).
func expandFx(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 4 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "fx requires a name, a parameter list, and a (-> Type) annotation"}
	}
	name := call.Elements[1]
	params := call.Elements[2]
	arrow, ok := call.Elements[3].(*ast.List)
	if !ok || arrow.HeadSymbolName() != "->" || len(arrow.Elements) != 2 {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Elements[3].Pos(), Msg: "fx's third form must be (-> Type)"}
	}
	returnType := arrow.Elements[1]
	body := call.Elements[4:]
	return list(call, sym(call, "defun-typed"), name, params, returnType, wrapBody(call, body)), nil
}

// expandLet rewrites `(let [b0 v0 b1 v1 ...] body...)` to a `do` block of
// variable declarations followed by the body, the last form of which is
// the block's return value when used in a function body (spec.md §4.B).
func expandLet(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "let requires a binding vector"}
	}
	bindings, ok := call.Elements[1].(*ast.List)
	if !ok || len(bindings.Elements)%2 != 0 {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Elements[1].Pos(), Msg: "let bindings must be an even-length vector of name/value pairs"}
	}
	forms := make([]ast.Node, 0, len(bindings.Elements)/2+len(call.Elements)-2)
	for i := 0; i < len(bindings.Elements); i += 2 {
		name := bindings.Elements[i]
		value := bindings.Elements[i+1]
		forms = append(forms, list(call, sym(call, "def"), name, value))
	}
	forms = append(forms, call.Elements[2:]...)
	return wrapBody(call, forms), nil
}

// isElseMarker reports whether test is the literal `true` or the `:else`
// symbol, either of which marks a cond clause's fall-through (spec.md
// §4.B).
func isElseMarker(test ast.Node) bool {
	if lit, ok := test.(*ast.Literal); ok && lit.Kind == ast.BoolLiteral {
		return lit.Bool
	}
	if s, ok := test.(*ast.Symbol); ok {
		return s.Name == ":else"
	}
	return false
}

// expandCond rewrites `(cond c0 e0 c1 e1 ... true eN)` to a right-nested
// `if` chain (spec.md §4.B).
func expandCond(e *Expander, call *ast.List) (ast.Node, error) {
	clauses := call.Elements[1:]
	if len(clauses) == 0 {
		return ast.NewNilLiteral(call.Pos()), nil
	}

	var fallback ast.Node = ast.NewNilLiteral(call.Pos())
	pairs := clauses
	if len(clauses)%2 != 0 {
		fallback = clauses[len(clauses)-1]
		pairs = clauses[:len(clauses)-1]
	}

	result := fallback
	for i := len(pairs) - 2; i >= 0; i -= 2 {
		test := pairs[i]
		expr := pairs[i+1]
		if i == len(pairs)-2 && isElseMarker(test) {
			result = expr
			continue
		}
		result = list(call, sym(call, "if"), test, expr, result)
	}
	return result, nil
}

// expandFor rewrites the three `for` shapes (spec.md §4.B) to the core
// forms internal/lower recognizes directly: `for-classical`, `for-each`,
// and `for-range`.
func expandFor(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "for requires a binding form"}
	}
	bindings, ok := call.Elements[1].(*ast.List)
	if !ok {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Elements[1].Pos(), Msg: "for's binding form must be a list"}
	}
	body := call.Elements[2:]

	switch len(bindings.Elements) {
	case 3:
		init, test, update := bindings.Elements[0], bindings.Elements[1], bindings.Elements[2]
		return list(call, sym(call, "for-classical"), init, test, update, wrapBody(call, body)), nil
	case 2:
		binding, second := bindings.Elements[0], bindings.Elements[1]
		if rangeForm, ok := second.(*ast.List); ok && rangeForm.HeadSymbolName() == "range" && len(rangeForm.Elements) == 2 {
			return list(call, sym(call, "for-range"), binding, rangeForm.Elements[1], wrapBody(call, body)), nil
		}
		return list(call, sym(call, "for-each"), binding, second, wrapBody(call, body)), nil
	default:
		return nil, &Error{Kind: MalformedTemplate, Pos: bindings.Pos(),
			Msg: "for's binding form must have 2 elements ([x coll] or [x (range n)]) or 3 ([init test update])"}
	}
}

// expandThreading rewrites `(-> x (f a) (g b))` to `(g (f x a) b)`,
// inserting the threaded value as each form's first argument (spec.md
// §4.B).
func expandThreading(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "-> requires an initial value"}
	}
	result := call.Elements[1]
	for _, step := range call.Elements[2:] {
		switch f := step.(type) {
		case *ast.List:
			elems := append([]ast.Node{f.Elements[0], result}, f.Elements[1:]...)
			result = list(step, elems...)
		default:
			result = list(step, step, result)
		}
	}
	return result, nil
}

// expandWhen rewrites `(when test body...)` to `(if test (do body...))`
// (spec.md §4.B).
func expandWhen(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "when requires a test"}
	}
	test := call.Elements[1]
	body := call.Elements[2:]
	return list(call, sym(call, "if"), test, wrapBody(call, body)), nil
}

// expandUnless rewrites `(unless test body...)` to
// `(if (not test) (do body...))` (spec.md §4.B).
func expandUnless(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "unless requires a test"}
	}
	test := call.Elements[1]
	body := call.Elements[2:]
	negated := list(call, sym(call, "not"), test)
	return list(call, sym(call, "if"), negated, wrapBody(call, body)), nil
}

// expandAnd left-folds `(and a b c)` into `((a && b) && c)` (spec.md
// §4.B).
func expandAnd(e *Expander, call *ast.List) (ast.Node, error) {
	return foldBinaryOp(call, "&&", true)
}

// expandOr left-folds `(or a b c)` into `((a || b) || c)` (spec.md §4.B).
func expandOr(e *Expander, call *ast.List) (ast.Node, error) {
	return foldBinaryOp(call, "||", false)
}

func foldBinaryOp(call *ast.List, op string, identity bool) (ast.Node, error) {
	args := call.Elements[1:]
	if len(args) == 0 {
		return ast.NewBoolLiteral(call.Pos(), identity), nil
	}
	result := args[0]
	for _, a := range args[1:] {
		result = list(call, sym(call, op), result, a)
	}
	return result, nil
}

// expandNot rewrites `(not x)` to the unary `(! x)` (spec.md §4.B).
func expandNot(e *Expander, call *ast.List) (ast.Node, error) {
	if len(call.Elements) != 2 {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(), Msg: "not takes exactly one argument"}
	}
	return list(call, sym(call, "!"), call.Elements[1]), nil
}
