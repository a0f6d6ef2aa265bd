// Package ir defines HQL's intermediate representation: a typed, explicit
// tree that resembles a JavaScript AST, produced by internal/lower and
// consumed by internal/codegen. IR is immutable once produced (spec.md
// §3 "Lifecycles").
package ir

// Node is implemented by every IR node kind.
type Node interface {
	irNode()
}

// Program is the root IR node: an ordered sequence of top-level statements.
type Program struct {
	Body []Node
}

func (*Program) irNode() {}

// DeclKind distinguishes const/let variable declarations.
type DeclKind int

const (
	Const DeclKind = iota
	Let
)

// VariableDeclaration is `(def x e)` lowered, or a let-binding lowered
// inside a Block.
type VariableDeclaration struct {
	Kind DeclKind
	ID   *Identifier
	Init Node // expression, may be nil
}

func (*VariableDeclaration) irNode() {}

// ParamInfo describes one function parameter after lowering.
type ParamInfo struct {
	Name           string
	TypeAnnotation string // rendered from typeexpr.TypeExpr, "" if absent
	DefaultValue   Node   // non-nil iff the surface form used name = expr
	IsRest         bool
}

// FunctionDeclaration covers named, anonymous, and named-argument
// functions. When IsNamedArgs is true, Params always has exactly one
// synthetic entry named "params"; the original parameter list is recorded
// on NamedParams for the codegen's destructuring preamble.
type FunctionDeclaration struct {
	ID          *Identifier // nil iff IsAnonymous
	Params      []*ParamInfo
	NamedParams []*ParamInfo // original per-field params when IsNamedArgs
	Body        *Block
	IsAnonymous bool
	IsNamedArgs bool
	IsTyped     bool   // set by `fx`, preserved for fidelity, never checked
	ReturnType  string // rendered from typeexpr.TypeExpr, "" if absent/Void
}

func (*FunctionDeclaration) irNode() {}

// Block is an ordered sequence of statements.
type Block struct {
	Body []Node
}

func (*Block) irNode() {}

// ReturnStatement returns Argument, or nothing when Argument is nil.
type ReturnStatement struct {
	Argument Node
}

func (*ReturnStatement) irNode() {}

// BinaryExpression is `(op left right)` lowered; codegen always
// parenthesizes it (spec.md §4.D).
type BinaryExpression struct {
	Op    string
	Left  Node
	Right Node
}

func (*BinaryExpression) irNode() {}

// UnaryExpression is a single-operand operator application, e.g. `(- x)`.
type UnaryExpression struct {
	Op       string
	Argument Node
	Prefix   bool
}

func (*UnaryExpression) irNode() {}

// CallExpression is a function/method invocation. When IsNamedArgs is true
// Arguments holds exactly one ObjectLiteral built from the call's named
// arguments (spec.md §9 Open Question, resolved to "always object form").
type CallExpression struct {
	Callee      Node
	Arguments   []Node
	IsNamedArgs bool
}

func (*CallExpression) irNode() {}

// NewExpression is `(new C args...)` lowered.
type NewExpression struct {
	Callee    Node
	Arguments []Node
}

func (*NewExpression) irNode() {}

// MemberAccess is `(get o k)` lowered: `obj.prop` when Computed is false,
// `obj[expr]` when true.
type MemberAccess struct {
	Object   Node
	Property Node // *Identifier (dot form) or any expression (computed form)
	Computed bool
}

func (*MemberAccess) irNode() {}

// ConditionalExpression is `(if t c a)` lowered. Codegen always emits it as
// a parenthesized ternary, in statement and expression position alike.
type ConditionalExpression struct {
	Test       Node
	Consequent Node
	Alternate  Node // NullLiteral when the surface form omitted it
}

func (*ConditionalExpression) irNode() {}

// ForStatement covers all three `for` forms after lowering: classical
// counted (Init/Test/Update all set), forEach-style (Each set), and
// counted-with-range (Init/Test/Update set from the expanded range form).
type ForStatement struct {
	Init   Node
	Test   Node
	Update Node
	Each   *ForEach
	Body   *Block
}

func (*ForStatement) irNode() {}

// ForEach describes the `for [x coll] body...` forEach-style loop.
type ForEach struct {
	Binding     *Identifier
	Iterable    Node
}

// AssignmentExpression is `(set x e)` lowered.
type AssignmentExpression struct {
	Op    string
	Left  Node
	Right Node
}

func (*AssignmentExpression) irNode() {}

// ObjectProperty is one `key: value` pair in an ObjectLiteral.
type ObjectProperty struct {
	Key   string
	Value Node
}

// ObjectLiteral preserves authored property order (spec.md §4.D
// determinism: "stable ordering of object properties (as authored)").
type ObjectLiteral struct {
	Properties []ObjectProperty
}

func (*ObjectLiteral) irNode() {}

// ArrayLiteral is `[...]` lowered.
type ArrayLiteral struct {
	Elements []Node
}

func (*ArrayLiteral) irNode() {}

// TemplateLiteral is a backtick-quoted interpolated string: Quasis has one
// more element than Expressions, interleaved Quasis[0] Expressions[0]
// Quasis[1] ... Quasis[n].
type TemplateLiteral struct {
	Quasis      []string
	Expressions []Node
}

func (*TemplateLiteral) irNode() {}

// NumericLiteral is a bare number.
type NumericLiteral struct {
	Value float64
}

func (*NumericLiteral) irNode() {}

// StringLiteralNode is a bare (non-template) string.
type StringLiteralNode struct {
	Value string
}

func (*StringLiteralNode) irNode() {}

// BooleanLiteral is a bare true/false.
type BooleanLiteral struct {
	Value bool
}

func (*BooleanLiteral) irNode() {}

// NullLiteral is `null`, used both for surface `nil` and as the synthetic
// alternate of a two-armed `if`.
type NullLiteral struct{}

func (*NullLiteral) irNode() {}

// Identifier is a canonicalized name. IsJSAccess is set for `js/`-prefixed
// surface symbols (spec.md §3 invariant, §4.C).
type Identifier struct {
	Name       string
	IsJSAccess bool
}

func (*Identifier) irNode() {}

// EnumMember is one `defenum` member: `{Name: "Name"}` per spec.md §4.B.
type EnumMember struct {
	Name string
}

// EnumDeclaration is `(defenum Name M0 M1 ...)` lowered.
type EnumDeclaration struct {
	Name    *Identifier
	Members []EnumMember
}

func (*EnumDeclaration) irNode() {}

// ImportDeclaration is `(import name "spec")` lowered.
type ImportDeclaration struct {
	Specifier string
	Binding   *Identifier
}

func (*ImportDeclaration) irNode() {}

// ExportSpecifier is one `local as exported` pair. Exported matches the
// exact string literal requested in the surface form (spec.md §3
// invariant 5); Local is the canonicalized identifier.
type ExportSpecifier struct {
	Local    string
	Exported string
}

// ExportDeclaration is `(export "external" local)` lowered.
type ExportDeclaration struct {
	Exports []ExportSpecifier
}

func (*ExportDeclaration) irNode() {}

// ExpressionStatement wraps a bare expression used in statement position
// (spec.md §4.D: "bare expressions at top level are wrapped ... no
// return").
type ExpressionStatement struct {
	Expression Node
}

func (*ExpressionStatement) irNode() {}
