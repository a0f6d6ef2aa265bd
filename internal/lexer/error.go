package lexer

import (
	"fmt"

	"github.com/hqlc/hql/internal/token"
)

// ErrorKind is the closed set of failure kinds the reader (lexer + the
// delimiter-matching performed while building the surface AST) can report.
// The reader aborts on first error; there is no error recovery.
type ErrorKind int

const (
	UnclosedParen ErrorKind = iota
	UnclosedBracket
	UnclosedBrace
	UnclosedString
	InvalidEscape
	UnexpectedClose
)

var errorKindNames = map[ErrorKind]string{
	UnclosedParen:   "UnclosedParen",
	UnclosedBracket: "UnclosedBracket",
	UnclosedBrace:   "UnclosedBrace",
	UnclosedString:  "UnclosedString",
	InvalidEscape:   "InvalidEscape",
	UnexpectedClose: "UnexpectedClose",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a single reader failure: the offending position plus the closed
// failure kind. Both the lexer (UnclosedString, InvalidEscape) and the
// reader's delimiter matching (UnclosedParen, UnclosedBracket, UnclosedBrace,
// UnexpectedClose) construct values of this type so that downstream
// diagnostics handling is uniform regardless of which stage detected it.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
	Ch   rune // set for UnexpectedClose
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
}
