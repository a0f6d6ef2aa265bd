package macro

import "github.com/hqlc/hql/internal/ast"

// Rule is a single macro rewrite rule: given the unexpanded call form,
// produce its one-step rewritten form. The expander re-expands whatever is
// returned (spec.md §4.B: "rewrite one step and re-expand the result").
type Rule interface {
	Apply(e *Expander, call *ast.List) (ast.Node, error)
}

// BuiltinFunc adapts a function to the Rule interface for the core's
// built-in macros (spec.md §4.B).
type BuiltinFunc func(e *Expander, call *ast.List) (ast.Node, error)

// Apply implements Rule.
func (f BuiltinFunc) Apply(e *Expander, call *ast.List) (ast.Node, error) {
	return f(e, call)
}

// Table is a process-wide-per-compilation mapping from macro name to rule
// (spec.md §3 "Macro table"). A name resolves to exactly one rule at any
// expansion step; Define replaces any prior rule for the same name.
type Table struct {
	rules map[string]Rule
}

// NewTable returns an empty macro table.
func NewTable() *Table {
	return &Table{rules: map[string]Rule{}}
}

// Define installs rule under name, replacing any prior rule.
func (t *Table) Define(name string, rule Rule) {
	t.rules[name] = rule
}

// Lookup returns the rule registered for name, if any.
func (t *Table) Lookup(name string) (Rule, bool) {
	r, ok := t.rules[name]
	return r, ok
}

// newBuiltinTable returns a Table pre-populated with every built-in macro
// in spec.md §4.B. defmacro and quote are handled directly by the
// Expander rather than through the table, since they are not ordinary
// rewrite rules: defmacro installs a rule and produces no output node,
// and quote realizes its operand as literal data rather than rewriting to
// another form to re-expand.
func newBuiltinTable() *Table {
	t := NewTable()
	t.Define("defn", BuiltinFunc(expandDefn))
	t.Define("fx", BuiltinFunc(expandFx))
	t.Define("let", BuiltinFunc(expandLet))
	t.Define("cond", BuiltinFunc(expandCond))
	t.Define("for", BuiltinFunc(expandFor))
	t.Define("->", BuiltinFunc(expandThreading))
	t.Define("when", BuiltinFunc(expandWhen))
	t.Define("unless", BuiltinFunc(expandUnless))
	t.Define("and", BuiltinFunc(expandAnd))
	t.Define("or", BuiltinFunc(expandOr))
	t.Define("not", BuiltinFunc(expandNot))
	return t
}
