package codegen

import "fmt"

// Error reports an emit-phase failure: an IR shape the generator does not
// recognize. Per spec.md §7 this is always an internal invariant
// violation — a well-formed IR never triggers it.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("emit: %s", e.Msg)
}
