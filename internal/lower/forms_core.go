package lower

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/canon"
	"github.com/hqlc/hql/internal/ir"
	"github.com/hqlc/hql/internal/typeexpr"
)

// lowerDef lowers `(def x e)` to a VariableDeclaration, with one
// exception: `(def name (import "spec"))` is the alternate import syntax
// and lowers to an ImportDeclaration (spec.md §4.C).
func lowerDef(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 3 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "def takes exactly a name and a value"}
	}
	nameSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "def's first argument must be a symbol"}
	}
	if nested, ok := l.Elements[2].(*ast.List); ok && nested.HeadSymbolName() == "import" && len(nested.Elements) == 2 {
		specLit, ok := nested.Elements[1].(*ast.Literal)
		if !ok || specLit.Kind != ast.StringLiteral {
			return nil, &Error{Kind: UnsupportedKeySyntax, Pos: nested.Elements[1].Pos(), Msg: "import specifier must be a string literal"}
		}
		return &ir.ImportDeclaration{Specifier: specLit.Str, Binding: lowerIdentifier(nameSym)}, nil
	}
	init, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	return &ir.VariableDeclaration{Kind: ir.Const, ID: lowerIdentifier(nameSym), Init: init}, nil
}

// lowerSet lowers `(set x e)` to an AssignmentExpression (spec.md §4.C).
func lowerSet(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 3 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "set takes exactly a target and a value"}
	}
	target, err := lowerForm(l.Elements[1])
	if err != nil {
		return nil, err
	}
	value, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	return &ir.AssignmentExpression{Op: "=", Left: target, Right: value}, nil
}

// lowerDefun lowers `(defun name (params...) body)` (and, when typed,
// `(defun-typed name (params...) ReturnType body)`) to a
// FunctionDeclaration, collapsing named parameters into a single
// synthetic `params` argument (spec.md §3 invariant 3, §4.C).
func lowerDefun(l *ast.List, typed bool) (ir.Node, error) {
	minLen := 4
	if typed {
		minLen = 5
	}
	if len(l.Elements) != minLen {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "malformed function declaration"}
	}
	nameSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "function name must be a symbol"}
	}
	paramList, ok := l.Elements[2].(*ast.List)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[2].Pos(), Msg: "parameter list must be a list"}
	}
	params, namedArgs, err := parseParams(paramList)
	if err != nil {
		return nil, err
	}

	returnType := ""
	bodyIdx := 3
	if typed {
		if retSym, ok := l.Elements[3].(*ast.Symbol); ok && !typeexpr.Parse(retSym.Name).IsVoid() {
			returnType = typeexpr.Parse(retSym.Name).String()
		}
		bodyIdx = 4
	}

	body, err := lowerFunctionBody(l.Elements[bodyIdx])
	if err != nil {
		return nil, err
	}

	decl := &ir.FunctionDeclaration{
		ID:          lowerIdentifier(nameSym),
		Body:        body,
		IsNamedArgs: namedArgs,
		IsTyped:     typed,
		ReturnType:  returnType,
	}
	if namedArgs {
		decl.Params = []*ir.ParamInfo{{Name: "params"}}
		decl.NamedParams = params
	} else {
		decl.Params = params
	}
	return decl, nil
}

// lowerFn lowers `(fn (params...) body)` to an anonymous FunctionDeclaration
// (spec.md §4.C).
func lowerFn(l *ast.List) (ir.Node, error) {
	if len(l.Elements) < 3 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "fn requires a parameter list and a body"}
	}
	paramList, ok := l.Elements[1].(*ast.List)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "parameter list must be a list"}
	}
	params, namedArgs, err := parseParams(paramList)
	if err != nil {
		return nil, err
	}

	var bodyNode ast.Node
	if len(l.Elements) == 3 {
		bodyNode = l.Elements[2]
	} else {
		bodyNode = ast.NewList(l.Pos(), append([]ast.Node{ast.NewSymbol(l.Pos(), "do")}, l.Elements[2:]...))
	}
	body, err := lowerFunctionBody(bodyNode)
	if err != nil {
		return nil, err
	}

	decl := &ir.FunctionDeclaration{Body: body, IsAnonymous: true, IsNamedArgs: namedArgs}
	if namedArgs {
		decl.Params = []*ir.ParamInfo{{Name: "params"}}
		decl.NamedParams = params
	} else {
		decl.Params = params
	}
	return decl, nil
}

// lowerIf lowers `(if t c)` / `(if t c a)` to a ConditionalExpression,
// which codegen emits as a ternary (spec.md §4.C).
func lowerIf(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 3 && len(l.Elements) != 4 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "if takes a test, a consequent, and an optional alternate"}
	}
	test, err := lowerForm(l.Elements[1])
	if err != nil {
		return nil, err
	}
	consequent, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	var alternate ir.Node = &ir.NullLiteral{}
	if len(l.Elements) == 4 {
		alternate, err = lowerForm(l.Elements[3])
		if err != nil {
			return nil, err
		}
	}
	return &ir.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

// lowerGet lowers `(get o k)` to a MemberAccess: dot access when k is a
// string literal naming a valid identifier, computed access otherwise
// (spec.md §4.C).
func lowerGet(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 3 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "get takes exactly an object and a key"}
	}
	obj, err := lowerForm(l.Elements[1])
	if err != nil {
		return nil, err
	}
	if strLit, ok := l.Elements[2].(*ast.Literal); ok && strLit.Kind == ast.StringLiteral {
		if isValidJSIdentifier(strLit.Str) {
			return &ir.MemberAccess{Object: obj, Property: &ir.Identifier{Name: strLit.Str}, Computed: false}, nil
		}
		return &ir.MemberAccess{Object: obj, Property: &ir.StringLiteralNode{Value: strLit.Str}, Computed: true}, nil
	}
	key, err := lowerForm(l.Elements[2])
	if err != nil {
		return nil, err
	}
	return &ir.MemberAccess{Object: obj, Property: key, Computed: true}, nil
}

func isValidJSIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// lowerNew lowers `(new C args...)` to a NewExpression (spec.md §4.C).
func lowerNew(l *ast.List) (ir.Node, error) {
	if len(l.Elements) < 2 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "new requires a constructor"}
	}
	callee, err := lowerForm(l.Elements[1])
	if err != nil {
		return nil, err
	}
	args := make([]ir.Node, len(l.Elements)-2)
	for i, a := range l.Elements[2:] {
		v, err := lowerForm(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return &ir.NewExpression{Callee: callee, Arguments: args}, nil
}

// lowerImportForm lowers the standalone `(import name "spec")` form
// (spec.md §4.C).
func lowerImportForm(l *ast.List) (ir.Node, error) {
	if len(l.Elements) != 3 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "import takes exactly a binding name and a specifier"}
	}
	nameSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "import binding must be a symbol"}
	}
	specLit, ok := l.Elements[2].(*ast.Literal)
	if !ok || specLit.Kind != ast.StringLiteral {
		return nil, &Error{Kind: UnsupportedKeySyntax, Pos: l.Elements[2].Pos(), Msg: "import specifier must be a string literal"}
	}
	return &ir.ImportDeclaration{Specifier: specLit.Str, Binding: lowerIdentifier(nameSym)}, nil
}

// lowerExport lowers `(export "external" local ...)` to an
// ExportDeclaration, one ExportSpecifier per pair (spec.md §3 invariant 5,
// §4.C).
func lowerExport(l *ast.List) (ir.Node, error) {
	rest := l.Elements[1:]
	if len(rest) == 0 || len(rest)%2 != 0 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "export requires alternating external-name/local-symbol pairs"}
	}
	specs := make([]ir.ExportSpecifier, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		extLit, ok := rest[i].(*ast.Literal)
		if !ok || extLit.Kind != ast.StringLiteral {
			return nil, &Error{Kind: UnsupportedKeySyntax, Pos: rest[i].Pos(), Msg: "export name must be a string literal"}
		}
		localSym, ok := rest[i+1].(*ast.Symbol)
		if !ok {
			return nil, &Error{Kind: UnknownSpecialForm, Pos: rest[i+1].Pos(), Msg: "export local binding must be a symbol"}
		}
		specs = append(specs, ir.ExportSpecifier{Local: canon.Canonicalize(localSym.Name), Exported: extLit.Str})
	}
	return &ir.ExportDeclaration{Exports: specs}, nil
}

// lowerDefenum lowers `(defenum Name M0 M1 ...)` to an EnumDeclaration.
// Member names are kept verbatim: they are the frozen mapping's keys and
// values both (spec.md §4.B example: `{red: "red", ...}`).
func lowerDefenum(l *ast.List) (ir.Node, error) {
	if len(l.Elements) < 2 {
		return nil, &Error{Kind: BadArgumentCount, Pos: l.Pos(), Msg: "defenum requires a name"}
	}
	nameSym, ok := l.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: UnknownSpecialForm, Pos: l.Elements[1].Pos(), Msg: "defenum name must be a symbol"}
	}
	members := make([]ir.EnumMember, 0, len(l.Elements)-2)
	for _, m := range l.Elements[2:] {
		sym, ok := m.(*ast.Symbol)
		if !ok {
			return nil, &Error{Kind: UnsupportedKeySyntax, Pos: m.Pos(), Msg: "enum members must be symbols"}
		}
		members = append(members, ir.EnumMember{Name: sym.Name})
	}
	return &ir.EnumDeclaration{Name: lowerIdentifier(nameSym), Members: members}, nil
}
