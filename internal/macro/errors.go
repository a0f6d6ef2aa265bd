package macro

import (
	"fmt"

	"github.com/hqlc/hql/internal/token"
)

// ErrorKind is the closed set of failures the macro expander can report
// (spec.md §4.B).
type ErrorKind int

const (
	UnknownMacro ErrorKind = iota
	MacroArityMismatch
	MalformedTemplate
	RecursionLimitExceeded
	DuplicateParameter
)

var errorKindNames = map[ErrorKind]string{
	UnknownMacro:           "UnknownMacro",
	MacroArityMismatch:     "MacroArityMismatch",
	MalformedTemplate:      "MalformedTemplate",
	RecursionLimitExceeded: "RecursionLimitExceeded",
	DuplicateParameter:     "DuplicateParameter",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a single macro-expansion failure.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
}
