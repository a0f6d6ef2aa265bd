package lower

import (
	"strings"

	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/canon"
	"github.com/hqlc/hql/internal/ir"
	"github.com/hqlc/hql/internal/typeexpr"
)

// parseParams reads a raw surface parameter list into ParamInfo entries,
// recognizing `name`, `name: Type`, `name = default`, `name: Type =
// default`, and a `& name` rest parameter (spec.md §4.B, §4.C invariants
// 3-4). namedArgs reports whether any parameter carried the `:` marker.
func parseParams(list *ast.List) (params []*ir.ParamInfo, namedArgs bool, err error) {
	elems := list.Elements
	i := 0
	for i < len(elems) {
		nameSym, ok := elems[i].(*ast.Symbol)
		if !ok {
			return nil, false, &Error{Kind: UnknownSpecialForm, Pos: elems[i].Pos(), Msg: "parameter must be a symbol"}
		}

		if nameSym.Name == "&" {
			if i+1 >= len(elems) {
				return nil, false, &Error{Kind: BadArgumentCount, Pos: nameSym.Pos(), Msg: "expected a name after &"}
			}
			restSym, ok := elems[i+1].(*ast.Symbol)
			if !ok {
				return nil, false, &Error{Kind: UnknownSpecialForm, Pos: elems[i+1].Pos(), Msg: "rest parameter name must be a symbol"}
			}
			params = append(params, &ir.ParamInfo{Name: canon.Canonicalize(restSym.Name), IsRest: true})
			i += 2
			continue
		}

		isNamed := nameSym.IsNamedParam()
		if isNamed {
			namedArgs = true
		}
		name := strings.TrimSuffix(nameSym.Name, ":")
		i++

		var typeAnnotation string
		if isNamed && i < len(elems) {
			if typeSym, ok := elems[i].(*ast.Symbol); ok && typeSym.Name != "=" {
				typeAnnotation = typeexpr.Parse(typeSym.Name).String()
				i++
			}
		}

		var def ir.Node
		if i < len(elems) {
			if eqSym, ok := elems[i].(*ast.Symbol); ok && eqSym.Name == "=" {
				i++
				if i >= len(elems) {
					return nil, false, &Error{Kind: BadArgumentCount, Pos: eqSym.Pos(), Msg: "expected a default value after ="}
				}
				defNode, lerr := lowerForm(elems[i])
				if lerr != nil {
					return nil, false, lerr
				}
				def = defNode
				i++
			}
		}

		params = append(params, &ir.ParamInfo{
			Name:           canon.Canonicalize(name),
			TypeAnnotation: typeAnnotation,
			DefaultValue:   def,
		})
	}
	return params, namedArgs, nil
}
