// Package macro implements HQL's hygienic, fixed-point macro expander
// (spec.md §4.B): it rewrites defmacro and the built-in macros to core
// forms until no macro heads remain, so that internal/lower never sees
// anything but core syntax.
package macro

import "github.com/hqlc/hql/internal/ast"

// Limits bounds the expansion of a single compilation against
// non-terminating macros.
type Limits struct {
	// IterationLimit caps the number of fixed-point rewrite steps applied
	// at a single call site before giving up.
	IterationLimit int
	// RecursionLimit caps the nesting depth of expand() calls (macro
	// bodies expanding macro calls in their own arguments or templates).
	RecursionLimit int
}

// DefaultLimits returns the limits internal/driver installs unless a
// caller overrides them.
func DefaultLimits() Limits {
	return Limits{IterationLimit: 512, RecursionLimit: 256}
}

// Expander holds the state shared across one top-level Expand call: the
// macro table (built-ins plus anything installed by defmacro) and the
// gensym counter backing hygienic renaming.
type Expander struct {
	Table  *Table
	Limits Limits
	gensym *gensymCounter
	depth  int
}

// Expand expands every top-level form in nodes to a fixed point. defmacro
// forms install rules and are dropped from the output.
func Expand(nodes []ast.Node, limits Limits) ([]ast.Node, error) {
	e := &Expander{Table: newBuiltinTable(), Limits: limits, gensym: &gensymCounter{}}
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		r, err := e.expand(n)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// expand rewrites n to a fixed point, then recurses into whatever
// children remain.
func (e *Expander) expand(n ast.Node) (ast.Node, error) {
	cur, ok := n.(*ast.List)
	if !ok {
		return n, nil
	}
	if len(cur.Elements) == 0 {
		return cur, nil
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.Limits.RecursionLimit {
		return nil, &Error{Kind: RecursionLimitExceeded, Pos: cur.Pos(),
			Msg: "macro expansion recursion limit exceeded"}
	}

	head := cur.HeadSymbolName()
	switch head {
	case "quote":
		if len(cur.Elements) != 2 {
			return nil, &Error{Kind: MalformedTemplate, Pos: cur.Pos(), Msg: "quote takes exactly one operand"}
		}
		return quoteData(cur.Elements[1]), nil
	case "defmacro":
		return e.installDefmacro(cur)
	}

	iterations := 0
	for {
		head = cur.HeadSymbolName()
		rule, ok := e.Table.Lookup(head)
		if !ok {
			break
		}
		iterations++
		if iterations > e.Limits.IterationLimit {
			return nil, &Error{Kind: RecursionLimitExceeded, Pos: cur.Pos(),
				Msg: "\"" + head + "\" did not reach a fixed point within the iteration limit"}
		}
		rewritten, err := rule.Apply(e, cur)
		if err != nil {
			return nil, err
		}
		next, ok := rewritten.(*ast.List)
		if !ok {
			return e.expand(rewritten)
		}
		cur = next
	}

	return e.expandChildren(cur)
}

// expandChildren expands every element of list and rebuilds it, preserving
// its literal-kind flags. Elements that expand to nil (only possible for a
// nested defmacro, which is unusual but not forbidden) are dropped.
func (e *Expander) expandChildren(list *ast.List) (ast.Node, error) {
	elems := make([]ast.Node, 0, len(list.Elements))
	for _, el := range list.Elements {
		r, err := e.expand(el)
		if err != nil {
			return nil, err
		}
		if r != nil {
			elems = append(elems, r)
		}
	}
	out := ast.NewList(list.Pos(), elems)
	out.IsArrayLiteral, out.IsMapLiteral, out.IsSetLiteral = list.IsArrayLiteral, list.IsMapLiteral, list.IsSetLiteral
	return out, nil
}
