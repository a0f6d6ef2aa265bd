package macro

import (
	"strconv"

	"github.com/hqlc/hql/internal/ast"
)

// UserMacro is a rule installed by a `defmacro` form: a parameter list
// (with an optional rest parameter) bound against the quasiquote template
// that follows it.
type UserMacro struct {
	Name     string
	Params   []string
	Rest     string // "" if the macro takes no rest parameter
	Template ast.Node
}

// Apply binds call's arguments to m's parameters and realizes the
// template against them (spec.md §4.B).
func (m *UserMacro) Apply(e *Expander, call *ast.List) (ast.Node, error) {
	args := call.Elements[1:]
	if m.Rest == "" {
		if len(args) != len(m.Params) {
			return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(),
				Msg: m.Name + " expects " + strconv.Itoa(len(m.Params)) + " argument(s), got " + strconv.Itoa(len(args))}
		}
	} else if len(args) < len(m.Params) {
		return nil, &Error{Kind: MacroArityMismatch, Pos: call.Pos(),
			Msg: m.Name + " expects at least " + strconv.Itoa(len(m.Params)) + " argument(s), got " + strconv.Itoa(len(args))}
	}

	bindings := env{}
	for i, p := range m.Params {
		bindings[p] = []ast.Node{args[i]}
	}
	if m.Rest != "" {
		bindings[m.Rest] = args[len(m.Params):]
	}

	rs := newRenameScope(e.gensym)
	return realize(m.Template, bindings, rs)
}

// installDefmacro parses `(defmacro name (params...) template)` and
// installs the resulting rule into e's table. It always returns a nil
// node: a defmacro form produces no output of its own (spec.md §4.B).
func (e *Expander) installDefmacro(call *ast.List) (ast.Node, error) {
	if len(call.Elements) < 3 {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Pos(),
			Msg: "defmacro requires a name, a parameter list, and a template"}
	}
	nameSym, ok := call.Elements[1].(*ast.Symbol)
	if !ok {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Elements[1].Pos(),
			Msg: "defmacro name must be a symbol"}
	}
	paramList, ok := call.Elements[2].(*ast.List)
	if !ok {
		return nil, &Error{Kind: MalformedTemplate, Pos: call.Elements[2].Pos(),
			Msg: "defmacro parameter list must be a list"}
	}
	params, rest, err := parseMacroParams(paramList)
	if err != nil {
		return nil, err
	}

	body := call.Elements[3:]
	var raw ast.Node
	if len(body) == 1 {
		raw = body[0]
	} else {
		raw = ast.NewList(call.Pos(), append([]ast.Node{ast.NewSymbol(call.Pos(), "do")}, body...))
	}

	m := &UserMacro{
		Name:     nameSym.Name,
		Params:   params,
		Rest:     rest,
		Template: extractTemplate(raw),
	}
	e.Table.Define(nameSym.Name, m)
	return nil, nil
}

// extractTemplate strips one layer of `(quasiquote inner)` wrapping, since
// a template is normally authored with a backtick that the reader expands
// to that form. A template authored without a backtick is used as-is.
func extractTemplate(n ast.Node) ast.Node {
	if l, ok := n.(*ast.List); ok && l.HeadSymbolName() == "quasiquote" && len(l.Elements) == 2 {
		return l.Elements[1]
	}
	return n
}

// parseMacroParams reads a defmacro parameter list: zero or more plain
// symbols, followed optionally by a rest parameter spelled `& name` or
// `&body` (spec.md §4.B).
func parseMacroParams(list *ast.List) (params []string, rest string, err error) {
	seen := map[string]bool{}
	i := 0
	for i < len(list.Elements) {
		sym, ok := list.Elements[i].(*ast.Symbol)
		if !ok {
			return nil, "", &Error{Kind: MalformedTemplate, Pos: list.Elements[i].Pos(),
				Msg: "defmacro parameters must be symbols"}
		}
		if sym.Name == "&" {
			if i+1 >= len(list.Elements) {
				return nil, "", &Error{Kind: MalformedTemplate, Pos: sym.Pos(),
					Msg: "expected a name after &"}
			}
			restSym, ok := list.Elements[i+1].(*ast.Symbol)
			if !ok {
				return nil, "", &Error{Kind: MalformedTemplate, Pos: list.Elements[i+1].Pos(),
					Msg: "rest parameter name must be a symbol"}
			}
			rest = restSym.Name
			i += 2
			continue
		}
		if sym.Name == "&body" {
			rest = "body"
			i++
			continue
		}
		if seen[sym.Name] {
			return nil, "", &Error{Kind: DuplicateParameter, Pos: sym.Pos(),
				Msg: "duplicate parameter \"" + sym.Name + "\""}
		}
		seen[sym.Name] = true
		params = append(params, sym.Name)
		i++
	}
	return params, rest, nil
}
