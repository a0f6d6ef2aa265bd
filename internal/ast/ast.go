// Package ast defines the surface AST node types produced by the HQL
// reader: the tree the macro expander rewrites, close to source syntax.
package ast

import "github.com/hqlc/hql/internal/token"

// Node is implemented by every surface AST node kind.
type Node interface {
	Pos() token.Position
	node()
}

// baseNode carries the optional source position shared by every node kind.
// Embedding it gives each concrete node a Pos() for free, matching the
// teacher's BaseNode embedding pattern.
type baseNode struct {
	position token.Position
}

func (b baseNode) Pos() token.Position { return b.position }

// LiteralKind distinguishes the possible scalar literal values.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BoolLiteral
	NilLiteral
)

// Literal is a scalar value: a number, string, boolean, or nil.
type Literal struct {
	baseNode
	Kind LiteralKind

	Number float64
	Str    string
	Bool   bool

	// InterpolationSpans, when non-empty, marks byte ranges within Str that
	// the reader recognized as `\(ident)` interpolation markers. Preserved
	// from the lexer's token, re-recognized by the code generator.
	InterpolationSpans []token.InterpolationSpan
}

func (*Literal) node() {}

// NewNumberLiteral constructs a numeric Literal at pos.
func NewNumberLiteral(pos token.Position, v float64) *Literal {
	return &Literal{baseNode: baseNode{pos}, Kind: NumberLiteral, Number: v}
}

// NewStringLiteral constructs a string Literal at pos.
func NewStringLiteral(pos token.Position, v string, spans []token.InterpolationSpan) *Literal {
	return &Literal{baseNode: baseNode{pos}, Kind: StringLiteral, Str: v, InterpolationSpans: spans}
}

// NewBoolLiteral constructs a boolean Literal at pos.
func NewBoolLiteral(pos token.Position, v bool) *Literal {
	return &Literal{baseNode: baseNode{pos}, Kind: BoolLiteral, Bool: v}
}

// NewNilLiteral constructs a nil Literal at pos.
func NewNilLiteral(pos token.Position) *Literal {
	return &Literal{baseNode: baseNode{pos}, Kind: NilLiteral}
}

// Symbol is an identifier. Name may contain dots (a.b.c), carry a leading
// js/ prefix (JavaScript interop), or a trailing colon (named-parameter
// marker); those markers are inspected, not stripped, by later stages.
type Symbol struct {
	baseNode
	Name string
}

func (*Symbol) node() {}

// NewSymbol constructs a Symbol at pos.
func NewSymbol(pos token.Position, name string) *Symbol {
	return &Symbol{baseNode: baseNode{pos}, Name: name}
}

// IsJSAccess reports whether the symbol carries the js/ interop prefix.
func (s *Symbol) IsJSAccess() bool {
	return len(s.Name) > 3 && s.Name[:3] == "js/"
}

// IsNamedParam reports whether the symbol carries the trailing ':' marker
// used by named-parameter and named-argument syntax.
func (s *Symbol) IsNamedParam() bool {
	return len(s.Name) > 1 && s.Name[len(s.Name)-1] == ':'
}

// List is a parenthesized, bracketed, braced, or hash-bracketed sequence of
// elements. Exactly one of IsArrayLiteral, IsMapLiteral, IsSetLiteral is
// true for literal forms; all three are false for an ordinary `(...)` form.
type List struct {
	baseNode
	Elements      []Node
	IsArrayLiteral bool
	IsMapLiteral   bool
	IsSetLiteral   bool
}

func (*List) node() {}

// NewList constructs a List at pos with the given elements; its literal
// flags start false and are set by the caller.
func NewList(pos token.Position, elements []Node) *List {
	return &List{baseNode: baseNode{pos}, Elements: elements}
}

// Head returns the first element of the list, or nil if the list is empty.
func (l *List) Head() Node {
	if len(l.Elements) == 0 {
		return nil
	}
	return l.Elements[0]
}

// HeadSymbolName returns the name of the list's head symbol, or "" if the
// head is absent or not a symbol. Used throughout the macro expander and
// lowering pass to dispatch on a form's head.
func (l *List) HeadSymbolName() string {
	if sym, ok := l.Head().(*Symbol); ok {
		return sym.Name
	}
	return ""
}
