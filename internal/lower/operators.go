package lower

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/ir"
)

// lowerOperator lowers an operator call (`+ - * / < <= > >= = != && || !`)
// following Lisp arity conventions: 0 args is the operator's identity
// where one exists, 1 arg passes through (or negates, for `-`/`!`), 2+
// args left-fold into a chain of BinaryExpression (spec.md §4.C).
func lowerOperator(l *ast.List, op string) (ir.Node, error) {
	args := l.Elements[1:]

	if op == "!" {
		if len(args) != 1 {
			return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "! takes exactly one argument"}
		}
		operand, err := lowerForm(args[0])
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: "!", Argument: operand, Prefix: true}, nil
	}

	if op == "-" && len(args) == 1 {
		operand, err := lowerForm(args[0])
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: "-", Argument: operand, Prefix: true}, nil
	}

	if len(args) == 0 {
		switch op {
		case "+":
			return &ir.NumericLiteral{Value: 0}, nil
		case "*":
			return &ir.NumericLiteral{Value: 1}, nil
		case "&&":
			return &ir.BooleanLiteral{Value: true}, nil
		case "||":
			return &ir.BooleanLiteral{Value: false}, nil
		}
	}

	if len(args) == 0 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: op + " requires at least one argument"}
	}
	if len(args) == 1 {
		return lowerForm(args[0])
	}

	lowered := make([]ir.Node, len(args))
	for i, a := range args {
		v, err := lowerForm(a)
		if err != nil {
			return nil, err
		}
		lowered[i] = v
	}
	jsOp := jsBinaryOp(op)
	result := lowered[0]
	for _, r := range lowered[1:] {
		result = &ir.BinaryExpression{Op: jsOp, Left: result, Right: r}
	}
	return result, nil
}

// jsBinaryOp maps an HQL operator symbol to its JavaScript emission. `=`
// and `!=` are HQL's equality/inequality operators (spec.md §4.C) but `=`
// and `!=` are assignment/loose-comparison in JS, so they map to the
// strict forms; every other operator already reads the same in both
// languages.
func jsBinaryOp(op string) string {
	switch op {
	case "=":
		return "==="
	case "!=":
		return "!=="
	default:
		return op
	}
}
