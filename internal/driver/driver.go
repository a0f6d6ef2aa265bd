// Package driver sequences the reader, macro expander, IR lowering, and
// code generator into a single compile call (spec.md §4.E, §5, §6): one
// Compile invocation owns one fresh macro table, recursion/iteration
// limits, and import resolver, and none of that state crosses calls.
package driver

import (
	"context"

	"github.com/hqlc/hql/internal/codegen"
	"github.com/hqlc/hql/internal/diag"
	"github.com/hqlc/hql/internal/ir"
	"github.com/hqlc/hql/internal/lexer"
	"github.com/hqlc/hql/internal/lower"
	"github.com/hqlc/hql/internal/macro"
	"github.com/hqlc/hql/internal/reader"
)

// maxImportDepth bounds recursive inline-import resolution, the same way
// macro.Limits bounds macro recursion: a misbehaving resolver that always
// answers "inline" with a specifier pointing back at itself must not hang
// the driver or blow the Go stack.
const maxImportDepth = 32

// ImportKind is the resolver's verdict on a specifier (spec.md §4.E/§6).
type ImportKind string

const (
	// ImportInline means Payload is HQL source text to compile and splice
	// in place of the import.
	ImportInline ImportKind = "inline"
	// ImportPassthrough means Payload is a host URL; the driver rewrites
	// the import's specifier to it and emits a normal ES import.
	ImportPassthrough ImportKind = "passthrough"
)

// ImportResolution is the resolver callback's return value.
type ImportResolution struct {
	Kind    ImportKind
	Payload string
}

// ImportResolver resolves one import specifier (spec.md §6). It is the
// only boundary at which the core may perform I/O; the driver treats it
// as an opaque synchronous callback.
type ImportResolver func(specifier string) (ImportResolution, error)

// Options configures a single Compile call (spec.md §6).
type Options struct {
	// Filename is used only in diagnostics.
	Filename string
	// ResolveImport resolves import specifiers. A nil resolver makes
	// every import a Resolve-phase failure, matching spec.md §7's
	// Resolve error kind ("import resolver reported failure").
	ResolveImport ImportResolver
	// EmitHelpers controls whether the core helper prelude is emitted
	// when referenced; false means the host supplies the shims.
	EmitHelpers bool
	// RecursionLimit and IterationLimit override macro.DefaultLimits
	// when non-zero.
	RecursionLimit int
	IterationLimit int
}

// Result is a compile's output: Code on success, or the one diagnostic
// in Diagnostics when a stage fails.
type Result struct {
	Code        string
	Diagnostics []diag.Diagnostic
}

func (o Options) limits() macro.Limits {
	d := macro.DefaultLimits()
	if o.RecursionLimit > 0 {
		d.RecursionLimit = o.RecursionLimit
	}
	if o.IterationLimit > 0 {
		d.IterationLimit = o.IterationLimit
	}
	return d
}

// Compile runs the four-stage pipeline over source and returns the
// emitted JavaScript, or a single fail-fast diagnostic (spec.md §7).
// ctx is polled between stages, not mid-stage (spec.md §5).
func Compile(ctx context.Context, source string, opts Options) (Result, error) {
	nodes, err := reader.Read(source)
	if err != nil {
		d := diagFromReaderError(err, source, opts.Filename)
		return Result{Diagnostics: []diag.Diagnostic{d}}, d
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	expanded, err := macro.Expand(nodes, opts.limits())
	if err != nil {
		d := diagFromMacroError(err, source, opts.Filename)
		return Result{Diagnostics: []diag.Diagnostic{d}}, d
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	program, err := lower.Lower(expanded)
	if err != nil {
		d := diagFromLowerError(err, source, opts.Filename)
		return Result{Diagnostics: []diag.Diagnostic{d}}, d
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if program, err = resolveImports(program, opts, 0); err != nil {
		var d diag.Diagnostic
		if rerr, ok := err.(*resolveError); ok {
			d = rerr.diagnostic
		} else {
			d = diag.Diagnostic{Kind: diag.Resolve, Phase: diag.PhaseResolve, Message: err.Error(), File: opts.Filename}
		}
		return Result{Diagnostics: []diag.Diagnostic{d}}, d
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	code, err := codegen.Generate(program, codegen.Options{EmitHelpers: opts.EmitHelpers})
	if err != nil {
		d := diag.Diagnostic{Kind: diag.Emit, Phase: diag.PhaseEmit, Message: err.Error(), File: opts.Filename}
		return Result{Diagnostics: []diag.Diagnostic{d}}, d
	}

	return Result{Code: code}, nil
}

func diagFromReaderError(err error, source, filename string) diag.Diagnostic {
	if rerr, ok := err.(*lexer.Error); ok {
		msg := rerr.Kind.String()
		if rerr.Msg != "" {
			msg = rerr.Msg
		}
		return diag.Diagnostic{Kind: diag.Parse, Phase: diag.PhaseRead, Message: msg, Position: rerr.Pos, Source: source, File: filename}
	}
	return diag.Diagnostic{Kind: diag.Parse, Phase: diag.PhaseRead, Message: err.Error(), Source: source, File: filename}
}

func diagFromMacroError(err error, source, filename string) diag.Diagnostic {
	if merr, ok := err.(*macro.Error); ok {
		msg := merr.Kind.String()
		if merr.Msg != "" {
			msg = merr.Msg
		}
		return diag.Diagnostic{Kind: diag.Expand, Phase: diag.PhaseExpand, Message: msg, Position: merr.Pos, Source: source, File: filename}
	}
	return diag.Diagnostic{Kind: diag.Expand, Phase: diag.PhaseExpand, Message: err.Error(), Source: source, File: filename}
}

func diagFromLowerError(err error, source, filename string) diag.Diagnostic {
	if lerr, ok := err.(*lower.Error); ok {
		msg := lerr.Kind.String()
		if lerr.Msg != "" {
			msg = lerr.Msg
		}
		return diag.Diagnostic{Kind: diag.Lower, Phase: diag.PhaseLower, Message: msg, Position: lerr.Pos, Source: source, File: filename}
	}
	return diag.Diagnostic{Kind: diag.Lower, Phase: diag.PhaseLower, Message: err.Error(), Source: source, File: filename}
}

// resolveError carries a diag.Diagnostic through the plain error return
// path used by resolveImports, so Compile can surface it verbatim instead
// of re-wrapping it in a generic message.
type resolveError struct {
	diagnostic diag.Diagnostic
}

func (e *resolveError) Error() string { return e.diagnostic.Message }

// resolveImports walks program's top-level statements, splicing compiled
// inline imports in place and rewriting passthrough specifiers to their
// resolved host URL (spec.md §4.E, §6).
func resolveImports(program *ir.Program, opts Options, depth int) (*ir.Program, error) {
	if depth > maxImportDepth {
		return nil, &resolveError{diag.Diagnostic{Kind: diag.Resolve, Phase: diag.PhaseResolve, Message: "import resolution exceeded maximum depth", File: opts.Filename}}
	}

	out := make([]ir.Node, 0, len(program.Body))
	for _, stmt := range program.Body {
		imp, ok := stmt.(*ir.ImportDeclaration)
		if !ok {
			out = append(out, stmt)
			continue
		}

		if opts.ResolveImport == nil {
			return nil, &resolveError{diag.Diagnostic{
				Kind: diag.Resolve, Phase: diag.PhaseResolve,
				Message: "no import resolver configured for specifier " + imp.Specifier,
				File:    opts.Filename,
			}}
		}

		resolution, err := opts.ResolveImport(imp.Specifier)
		if err != nil {
			return nil, &resolveError{diag.Diagnostic{
				Kind: diag.Resolve, Phase: diag.PhaseResolve,
				Message: "resolving " + imp.Specifier + ": " + err.Error(),
				File:    opts.Filename,
			}}
		}

		switch resolution.Kind {
		case ImportPassthrough:
			out = append(out, &ir.ImportDeclaration{Specifier: resolution.Payload, Binding: imp.Binding})
		case ImportInline:
			inlined, err := compileInline(resolution.Payload, opts, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, inlined.Body...)
		default:
			return nil, &resolveError{diag.Diagnostic{
				Kind: diag.Resolve, Phase: diag.PhaseResolve,
				Message: "unknown import resolution kind for specifier " + imp.Specifier,
				File:    opts.Filename,
			}}
		}
	}
	return &ir.Program{Body: out}, nil
}

// compileInline runs an inlined import's source through the read/expand/
// lower stages (never codegen: its statements are spliced into the
// host program and emitted once, together, by the host's own Generate
// call) and resolves any imports it itself carries.
func compileInline(source string, opts Options, depth int) (*ir.Program, error) {
	nodes, err := reader.Read(source)
	if err != nil {
		return nil, &resolveError{diagFromReaderError(err, source, opts.Filename)}
	}
	expanded, err := macro.Expand(nodes, opts.limits())
	if err != nil {
		return nil, &resolveError{diagFromMacroError(err, source, opts.Filename)}
	}
	program, err := lower.Lower(expanded)
	if err != nil {
		return nil, &resolveError{diagFromLowerError(err, source, opts.Filename)}
	}
	return resolveImports(program, opts, depth)
}
