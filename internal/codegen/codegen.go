// Package codegen emits a deterministic JavaScript source string from
// HQL's IR (spec.md §4.D). Emission is a pure function of the IR plus
// Options: no dependence on map iteration order, stable indentation,
// stable property ordering.
package codegen

import "github.com/hqlc/hql/internal/ir"

// Options controls emission that isn't recoverable from the IR alone.
type Options struct {
	// EmitHelpers, when true, prepends the core helper prelude (spec.md
	// §4.E, glossary "Helper prelude") the first time the program
	// references one of its names. When false, the host is assumed to
	// supply the helpers itself and the prelude is never emitted.
	EmitHelpers bool
}

// Generate renders p as a JavaScript program (spec.md §4.D contract:
// "pure function from IR to a JavaScript source string").
func Generate(p *ir.Program, opts Options) (string, error) {
	pr := &printer{opts: opts}
	if err := pr.writeProgram(p); err != nil {
		return "", err
	}
	return pr.result(), nil
}

// printer accumulates output and tracks the bits of emission state that
// span the whole walk: indentation depth and whether the helper prelude
// has been referenced (result prepends it once, at the end).
type printer struct {
	out         []byte
	indentLevel int
	opts        Options
	usesHelpers bool
}

func (p *printer) result() string {
	if p.opts.EmitHelpers && p.usesHelpers {
		return helperPrelude + string(p.out)
	}
	return string(p.out)
}

func (p *printer) print(s string) {
	p.out = append(p.out, s...)
}

func (p *printer) printIndent() {
	for i := 0; i < p.indentLevel; i++ {
		p.out = append(p.out, ' ', ' ')
	}
}
