// Package diag defines the diagnostic shape threaded out of every
// compilation phase (spec.md §6, §7): a closed error-kind enum, a
// source position, and two renderings — a human-readable one with a
// source-line-and-caret (grounded on the teacher's
// internal/errors.CompilerError.Format) and a JSON one for tooling.
package diag

import "github.com/hqlc/hql/internal/token"

// Kind is the closed set of diagnostic phases a compilation can fail in
// (spec.md §7).
type Kind int

const (
	Parse Kind = iota
	Expand
	Lower
	Emit
	Resolve
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "Parse"
	case Expand:
		return "Expand"
	case Lower:
		return "Lower"
	case Emit:
		return "Emit"
	case Resolve:
		return "Resolve"
	default:
		return "Unknown"
	}
}

// Phase names the pipeline stage that produced a Diagnostic (spec.md §6's
// `{kind, message, position, phase}` shape). It is a string, not Kind:
// phases and error kinds pair up one to one but are named differently,
// e.g. a Parse diagnostic always carries phase "read".
type Phase string

const (
	PhaseRead    Phase = "read"
	PhaseExpand  Phase = "expand"
	PhaseLower   Phase = "lower"
	PhaseEmit    Phase = "emit"
	PhaseResolve Phase = "resolve"
)

// Diagnostic is the sole return value of a failing compile (spec.md §7:
// "on any error, compile returns no code and at least one diagnostic").
type Diagnostic struct {
	Kind     Kind
	Message  string
	Position token.Position
	Phase    Phase
	Source   string // full source text, used only for Format's caret rendering
	File     string // used only in Format's header; empty is valid
}

func (d Diagnostic) Error() string {
	return d.Format(false)
}
