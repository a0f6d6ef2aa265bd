package lower

import (
	"strings"

	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/canon"
	"github.com/hqlc/hql/internal/ir"
)

// lowerCall lowers an ordinary call `(f a b)` to a CallExpression, or a
// named-argument call `(f a: x b: y)` to a CallExpression carrying a
// single ObjectLiteral argument (spec.md §4.C). Per spec.md §9's
// underspecified flattening heuristic, named call sites always lower to
// object-argument form; no positional-flattening pass is attempted.
func lowerCall(l *ast.List) (ir.Node, error) {
	callee, err := lowerForm(l.Elements[0])
	if err != nil {
		return nil, err
	}
	args := l.Elements[1:]

	if len(args) > 0 {
		if firstSym, ok := args[0].(*ast.Symbol); ok && firstSym.IsNamedParam() {
			obj, err := lowerNamedArguments(l, args)
			if err != nil {
				return nil, err
			}
			return &ir.CallExpression{Callee: callee, Arguments: []ir.Node{obj}, IsNamedArgs: true}, nil
		}
	}

	lowered := make([]ir.Node, len(args))
	for i, a := range args {
		v, err := lowerForm(a)
		if err != nil {
			return nil, err
		}
		lowered[i] = v
	}
	return &ir.CallExpression{Callee: callee, Arguments: lowered, IsNamedArgs: false}, nil
}

func lowerNamedArguments(l *ast.List, args []ast.Node) (*ir.ObjectLiteral, error) {
	if len(args)%2 != 0 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "named arguments must alternate name: and value"}
	}
	props := make([]ir.ObjectProperty, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		nameSym, ok := args[i].(*ast.Symbol)
		if !ok || !nameSym.IsNamedParam() {
			return nil, &Error{Kind: UnsupportedKeySyntax, Pos: args[i].Pos(), Msg: "expected a name: argument marker"}
		}
		val, err := lowerForm(args[i+1])
		if err != nil {
			return nil, err
		}
		key := canon.Canonicalize(strings.TrimSuffix(nameSym.Name, ":"))
		props = append(props, ir.ObjectProperty{Key: key, Value: val})
	}
	return &ir.ObjectLiteral{Properties: props}, nil
}
