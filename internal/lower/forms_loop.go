package lower

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/ir"
)

// lowerForClassical lowers `(for-classical init test update body)` — the
// macro-expanded form of `for [init test update] body...` — to a
// ForStatement (spec.md §4.B, §4.C).
func lowerForClassical(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 5 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "malformed classical for loop"}
	}
	init, err := lowerForInit(l.Elements[1])
	if err != nil {
		return nil, err
	}
	test, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	update, err := lowerForm(l.Elements[3])
	if err != nil {
		return nil, err
	}
	body, err := lowerBlock(l.Elements[4])
	if err != nil {
		return nil, err
	}
	return &ir.ForStatement{Init: init, Test: test, Update: update, Body: body}, nil
}

// lowerForInit lowers a classical for loop's init clause. A `(def x e)`
// init is mutable for the loop's own lifetime, so it lowers to `let`
// rather than the `const` a bare `(def ...)` statement would otherwise
// get — the loop's update clause usually reassigns the same binding.
func lowerForInit(n ast.Node) (ir.Node, error) {
	if l, ok := n.(*ast.List); ok && l.HeadSymbolName() == "def" && len(l.Elements) == 3 {
		nameSym, ok := l.Elements[1].(*ast.Symbol)
		if !ok {
			return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "for loop init name must be a symbol"}
		}
		init, err := lowerForm(l.Elements[2])
		if err != nil {
			return nil, err
		}
		return &ir.VariableDeclaration{Kind: ir.Let, ID: lowerIdentifier(nameSym), Init: init}, nil
	}
	return lowerForm(n)
}

// lowerForEach lowers `(for-each binding iterable body)` — the
// macro-expanded form of `for [x coll] body...` — to a ForStatement whose
// Each field codegen recognizes as a `for...of` loop.
func lowerForEach(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 4 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "malformed forEach loop"}
	}
	bindingSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "forEach binding must be a symbol"}
	}
	iterable, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	body, err := lowerBlock(l.Elements[3])
	if err != nil {
		return nil, err
	}
	return &ir.ForStatement{Each: &ir.ForEach{Binding: lowerIdentifier(bindingSym), Iterable: iterable}, Body: body}, nil
}

// lowerForRange lowers `(for-range binding count body)` — the
// macro-expanded form of `for [x (range N)] body...` — to a classical
// counted ForStatement running binding from 0 to count-1.
func lowerForRange(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 4 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "malformed range for loop"}
	}
	bindingSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "range for binding must be a symbol"}
	}
	count, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	body, err := lowerBlock(l.Elements[3])
	if err != nil {
		return nil, err
	}
	return &ir.ForStatement{
		Init:   &ir.VariableDeclaration{Kind: ir.Let, ID: lowerIdentifier(bindingSym), Init: &ir.NumericLiteral{Value: 0}},
		Test:   &ir.BinaryExpression{Op: "<", Left: lowerIdentifier(bindingSym), Right: count},
		Update: &ir.AssignmentExpression{Op: "+=", Left: lowerIdentifier(bindingSym), Right: &ir.NumericLiteral{Value: 1}},
		Body:   body,
	}, nil
}
