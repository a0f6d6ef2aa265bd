// Package token defines the lexical tokens produced by the HQL reader.
package token

import "fmt"

// Kind identifies the syntactic category of a Token.
type Kind int

const (
	EOF Kind = iota
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	HashBracket // #[
	Quote       // '
	Backtick    // `
	Tilde       // ~
	TildeAt     // ~@
	String
	Number
	Boolean
	Nil
	Symbol
	Colon
	Comma
	Arrow // ->
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	LBrace:      "{",
	RBrace:      "}",
	HashBracket: "#[",
	Quote:       "'",
	Backtick:    "`",
	Tilde:       "~",
	TildeAt:     "~@",
	String:      "String",
	Number:      "Number",
	Boolean:     "Boolean",
	Nil:         "Nil",
	Symbol:      "Symbol",
	Colon:       ":",
	Comma:       ",",
	Arrow:       "->",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a location in source text. Column and Offset are both counted
// in runes, matching the teacher lexer's "column is a rune count, not a
// byte offset or display width" convention.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// InterpolationSpan marks a byte range within a String token's decoded value that
// the reader recognized as an HQL `\(ident)` interpolation marker. The
// lexer preserves these spans without evaluating them; the code generator
// later upgrades such strings to template literals.
type InterpolationSpan struct {
	Start int
	End   int
}

// Token is a single lexical unit with its decoded value and source position.
type Token struct {
	Kind Kind
	Text string // raw source text, or a symbol's name
	Pos  Position

	// Decoded payloads, populated according to Kind.
	NumberValue        float64
	StringValue        string
	InterpolationSpans []InterpolationSpan
	BoolValue          bool
}

func (t Token) String() string {
	switch t.Kind {
	case Symbol:
		return fmt.Sprintf("Symbol(%s)", t.Text)
	case String:
		return fmt.Sprintf("String(%q)", t.StringValue)
	case Number:
		return fmt.Sprintf("Number(%v)", t.NumberValue)
	default:
		return t.Kind.String()
	}
}
