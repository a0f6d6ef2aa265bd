// Package lower translates an expanded surface AST (spec.md §4.B output)
// into HQL's typed intermediate representation, applying identifier
// canonicalization and named-argument parameter-mode handling along the
// way (spec.md §4.C).
package lower

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/canon"
	"github.com/hqlc/hql/internal/ir"
)

// Lower maps every expanded top-level form to an IR node and returns the
// resulting Program. Top-level bare expressions are wrapped in
// ExpressionStatement; declarations (def, defun, defenum, import, export)
// are returned as-is (spec.md §4.D "bare expressions at top level").
func Lower(forms []ast.Node) (*ir.Program, error) {
	body, err := lowerStatements(flattenDo(forms))
	if err != nil {
		return nil, err
	}
	return &ir.Program{Body: body}, nil
}

// flattenDo splices any top-level `(do ...)` form's children in place, so
// a `let` used directly at top level behaves like an ordinary sequence of
// statements rather than a nested block.
func flattenDo(forms []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(forms))
	for _, f := range forms {
		if l, ok := f.(*ast.List); ok && l.HeadSymbolName() == "do" {
			out = append(out, flattenDo(l.Elements[1:])...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// lowerStatements lowers each form as a statement: declarations keep their
// natural shape, everything else is wrapped in ExpressionStatement.
func lowerStatements(forms []ast.Node) ([]ir.Node, error) {
	out := make([]ir.Node, 0, len(forms))
	for _, f := range forms {
		n, err := lowerStatement(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func lowerStatement(n ast.Node) (ir.Node, error) {
	v, err := lowerForm(n)
	if err != nil {
		return nil, err
	}
	if isDeclarationShaped(v) {
		return v, nil
	}
	return &ir.ExpressionStatement{Expression: v}, nil
}

func isDeclarationShaped(n ir.Node) bool {
	switch n.(type) {
	case *ir.VariableDeclaration, *ir.FunctionDeclaration, *ir.ForStatement,
		*ir.ReturnStatement, *ir.EnumDeclaration, *ir.ImportDeclaration, *ir.ExportDeclaration:
		return true
	}
	return false
}

// lowerBlock flattens a `(do ...)` body (or treats a bare single form as a
// one-element body) into a Block of plain statements, with no implicit
// return — used for loop bodies.
func lowerBlock(bodyNode ast.Node) (*ir.Block, error) {
	body, err := lowerStatements(flattenDo([]ast.Node{bodyNode}))
	if err != nil {
		return nil, err
	}
	return &ir.Block{Body: body}, nil
}

// lowerFunctionBody is lowerBlock plus tail-position handling: the last
// form becomes the function's ReturnStatement unless it is itself
// declaration-shaped (spec.md §4.D end-to-end example: a single-expression
// body becomes `return (expr);`).
func lowerFunctionBody(bodyNode ast.Node) (*ir.Block, error) {
	forms := flattenDo([]ast.Node{bodyNode})
	if len(forms) == 0 {
		return &ir.Block{}, nil
	}
	stmts, err := lowerStatements(forms[:len(forms)-1])
	if err != nil {
		return nil, err
	}
	tail, err := lowerForm(forms[len(forms)-1])
	if err != nil {
		return nil, err
	}
	if isDeclarationShaped(tail) {
		stmts = append(stmts, tail)
	} else {
		stmts = append(stmts, &ir.ReturnStatement{Argument: tail})
	}
	return &ir.Block{Body: stmts}, nil
}

// lowerForm lowers n wherever it appears: as a statement's payload, a
// nested expression, or a declaration. The caller decides whether the
// result needs ExpressionStatement wrapping.
func lowerForm(n ast.Node) (ir.Node, error) {
	switch v := n.(type) {
	case *ast.Literal:
		return lowerLiteral(v), nil
	case *ast.Symbol:
		return lowerIdentifier(v), nil
	case *ast.List:
		return lowerList(v)
	default:
		return nil, &Error{Kind: UnknownSpecialForm, Pos: n.Pos(), Msg: "unrecognized surface node"}
	}
}

func lowerIdentifier(sym *ast.Symbol) *ir.Identifier {
	return &ir.Identifier{Name: canon.Canonicalize(sym.Name), IsJSAccess: sym.IsJSAccess()}
}

func lowerLiteral(lit *ast.Literal) ir.Node {
	switch lit.Kind {
	case ast.NumberLiteral:
		return &ir.NumericLiteral{Value: lit.Number}
	case ast.StringLiteral:
		if len(lit.InterpolationSpans) > 0 {
			return buildTemplateLiteral(lit)
		}
		return &ir.StringLiteralNode{Value: lit.Str}
	case ast.BoolLiteral:
		return &ir.BooleanLiteral{Value: lit.Bool}
	default:
		return &ir.NullLiteral{}
	}
}

func lowerList(l *ast.List) (ir.Node, error) {
	switch {
	case l.IsArrayLiteral:
		return lowerArrayLiteral(l)
	case l.IsMapLiteral:
		return lowerMapLiteral(l)
	case l.IsSetLiteral:
		return lowerSetLiteral(l)
	}

	if len(l.Elements) == 0 {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Pos(), Msg: "empty call"}
	}

	switch l.HeadSymbolName() {
	case "def":
		return lowerDef(l)
	case "set":
		return lowerSet(l)
	case "defun":
		return lowerDefun(l, false)
	case "defun-typed":
		return lowerDefun(l, true)
	case "if":
		return lowerIf(l)
	case "get":
		return lowerGet(l)
	case "new":
		return lowerNew(l)
	case "fn":
		return lowerFn(l)
	case "import":
		return lowerImportForm(l)
	case "export":
		return lowerExport(l)
	case "defenum":
		return lowerDefenum(l)
	case "for-classical":
		return lowerForClassical(l)
	case "for-each":
		return lowerForEach(l)
	case "for-range":
		return lowerForRange(l)
	case "+", "-", "*", "/", "<", "<=", ">", ">=", "=", "!=", "&&", "||", "!":
		return lowerOperator(l, l.HeadSymbolName())
	default:
		return lowerCall(l)
	}
}
