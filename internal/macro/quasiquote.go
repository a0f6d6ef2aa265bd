package macro

import "github.com/hqlc/hql/internal/ast"

// env binds a defmacro template's parameters (and its rest parameter, if
// any) to the argument nodes supplied at a call site. A positional
// parameter binds to exactly one node; a rest parameter binds to zero or
// more.
type env map[string][]ast.Node

// realize evaluates a quasiquoted template against env, substituting
// unquote (~x) and unquote-splicing (~@xs) forms, and gensym-renaming any
// hygiene-marker symbol (spec.md §4.B).
func realize(template ast.Node, e env, rs *renameScope) (ast.Node, error) {
	switch n := template.(type) {
	case *ast.Symbol:
		if isHygienicMarker(n.Name) {
			return ast.NewSymbol(n.Pos(), rs.rename(n.Name)), nil
		}
		if vals, ok := e[n.Name]; ok {
			if len(vals) != 1 {
				return nil, &Error{Kind: MalformedTemplate, Pos: n.Pos(),
					Msg: "rest parameter \"" + n.Name + "\" used in a scalar position; use ~@ to splice it"}
			}
			return vals[0], nil
		}
		// Not a template parameter: a free reference, left to resolve at
		// the macro's expansion site. This is the "partially hygienic"
		// behavior spec.md §9 Design Notes describes as the baseline.
		return n, nil
	case *ast.Literal:
		return n, nil
	case *ast.List:
		if isUnquote(n) {
			return resolveUnquote(n.Elements[1], e, rs)
		}
		if isUnquoteSplicing(n) {
			return nil, &Error{Kind: MalformedTemplate, Pos: n.Pos(),
				Msg: "unquote-splicing may only appear as an element of a surrounding list"}
		}
		elems := make([]ast.Node, 0, len(n.Elements))
		for _, el := range n.Elements {
			if child, ok := el.(*ast.List); ok && isUnquoteSplicing(child) {
				spliced, err := resolveSplice(child.Elements[1], e, rs)
				if err != nil {
					return nil, err
				}
				elems = append(elems, spliced...)
				continue
			}
			r, err := realize(el, e, rs)
			if err != nil {
				return nil, err
			}
			elems = append(elems, r)
		}
		out := ast.NewList(n.Pos(), elems)
		out.IsArrayLiteral, out.IsMapLiteral, out.IsSetLiteral = n.IsArrayLiteral, n.IsMapLiteral, n.IsSetLiteral
		return out, nil
	default:
		return template, nil
	}
}

func isUnquote(n *ast.List) bool {
	return n.HeadSymbolName() == "unquote" && len(n.Elements) == 2
}

func isUnquoteSplicing(n *ast.List) bool {
	return n.HeadSymbolName() == "unquote-splicing" && len(n.Elements) == 2
}

func resolveUnquote(operand ast.Node, e env, rs *renameScope) (ast.Node, error) {
	if sym, ok := operand.(*ast.Symbol); ok {
		if vals, ok := e[sym.Name]; ok {
			if len(vals) != 1 {
				return nil, &Error{Kind: MalformedTemplate, Pos: sym.Pos(),
					Msg: "rest parameter \"" + sym.Name + "\" used in a scalar position; use ~@ to splice it"}
			}
			return vals[0], nil
		}
	}
	return realize(operand, e, rs)
}

func resolveSplice(operand ast.Node, e env, rs *renameScope) ([]ast.Node, error) {
	if sym, ok := operand.(*ast.Symbol); ok {
		if vals, ok := e[sym.Name]; ok {
			return vals, nil
		}
	}
	r, err := realize(operand, e, rs)
	if err != nil {
		return nil, err
	}
	return []ast.Node{r}, nil
}

// quoteData turns a bare `(quote x)` operand into a literal data
// representation of x: symbols become string literals naming themselves,
// lists become array literals of their quoted elements, and scalar
// literals pass through unchanged. This is the only meaning `quote` has
// once there is no interpreter to hand the quoted form to (spec.md §1).
func quoteData(n ast.Node) ast.Node {
	switch v := n.(type) {
	case *ast.Symbol:
		return ast.NewStringLiteral(v.Pos(), v.Name, nil)
	case *ast.List:
		elems := make([]ast.Node, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = quoteData(el)
		}
		out := ast.NewList(v.Pos(), elems)
		out.IsArrayLiteral = true
		return out
	default:
		return n
	}
}
