package lower

import (
	"fmt"

	"github.com/hqlc/hql/internal/token"
)

// ErrorKind is the closed set of failures IR lowering can report
// (spec.md §4.C).
type ErrorKind int

const (
	UnknownSpecialForm ErrorKind = iota
	BadArgumentCount
	UnsupportedKeySyntax
)

var errorKindNames = map[ErrorKind]string{
	UnknownSpecialForm:   "UnknownSpecialForm",
	BadArgumentCount:     "BadArgumentCount",
	UnsupportedKeySyntax: "UnsupportedKeySyntax",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a single lowering failure.
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
