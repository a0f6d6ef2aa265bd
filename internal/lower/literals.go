package lower

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/canon"
	"github.com/hqlc/hql/internal/ir"
)

func lowerArrayLiteral(l *ast.List) (ir.Node, error) {
	elems := make([]ir.Node, len(l.Elements))
	for i, el := range l.Elements {
		v, err := lowerForm(el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &ir.ArrayLiteral{Elements: elems}, nil
}

// lowerMapLiteral lowers the reader's desugared `{isMapLiteral: true,
// elements: [k0, v0, k1, v1, ...]}` shape into an ObjectLiteral. Keys are
// preserved verbatim (not canonicalized): they are data, not bound
// identifiers (spec.md §8 invariant 1, "round-trip of literals").
func lowerMapLiteral(l *ast.List) (ir.Node, error) {
	if len(l.Elements)%2 != 0 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "map literal requires an even number of elements"}
	}
	props := make([]ir.ObjectProperty, 0, len(l.Elements)/2)
	for i := 0; i < len(l.Elements); i += 2 {
		key, err := mapKeyText(l.Elements[i])
		if err != nil {
			return nil, err
		}
		val, err := lowerForm(l.Elements[i+1])
		if err != nil {
			return nil, err
		}
		props = append(props, ir.ObjectProperty{Key: key, Value: val})
	}
	return &ir.ObjectLiteral{Properties: props}, nil
}

func mapKeyText(n ast.Node) (string, error) {
	switch k := n.(type) {
	case *ast.Literal:
		if k.Kind != ast.StringLiteral {
			return "", &Error{Kind: UnsupportedKeySyntax, Pos: n.Pos(), Msg: "map keys must be string literals or symbols"}
		}
		return k.Str, nil
	case *ast.Symbol:
		return k.Name, nil
	default:
		return "", &Error{Kind: UnsupportedKeySyntax, Pos: n.Pos(), Msg: "map keys must be string literals or symbols"}
	}
}

// lowerSetLiteral lowers `#[...]` to `new Set([...])` (spec.md §4.B).
func lowerSetLiteral(l *ast.List) (ir.Node, error) {
	elems := make([]ir.Node, len(l.Elements))
	for i, el := range l.Elements {
		v, err := lowerForm(el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &ir.NewExpression{
		Callee:    &ir.Identifier{Name: "Set"},
		Arguments: []ir.Node{&ir.ArrayLiteral{Elements: elems}},
	}, nil
}

// buildTemplateLiteral splits a string literal's decoded text at its
// recorded `\(ident)` interpolation spans into alternating quasi text and
// identifier expressions (spec.md §4.D: such strings "are upgraded to
// template literals").
func buildTemplateLiteral(lit *ast.Literal) ir.Node {
	s := lit.Str
	quasis := make([]string, 0, len(lit.InterpolationSpans)+1)
	exprs := make([]ir.Node, 0, len(lit.InterpolationSpans))
	last := 0
	for _, sp := range lit.InterpolationSpans {
		quasis = append(quasis, s[last:sp.Start])
		name := s[sp.Start+1 : sp.End-1]
		exprs = append(exprs, &ir.Identifier{Name: canon.Canonicalize(name)})
		last = sp.End
	}
	quasis = append(quasis, s[last:])
	return &ir.TemplateLiteral{Quasis: quasis, Expressions: exprs}
}
