// Package hql is HQL's embeddable compiler façade: construct a Compiler
// with functional options, then call Compile on as many sources as you
// like. Mirrors the teacher's pkg/dwscript Engine/New(options...) shape.
package hql

import (
	"context"

	"github.com/hqlc/hql/internal/diag"
	"github.com/hqlc/hql/internal/driver"
)

// Result is a compilation's output: Code on success, or the one
// diagnostic in Diagnostics when a stage fails.
type Result struct {
	Code        string
	Diagnostics []diag.Diagnostic
}

// Compiler holds the options threaded into every Compile call. A Compiler
// carries no per-compilation state of its own (spec.md §5): each Compile
// call gets its own fresh driver.Options-derived pipeline state.
type Compiler struct {
	opts driver.Options
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithImportResolver installs the callback used to resolve `import`
// specifiers. Without one, any import form fails compilation with a
// Resolve diagnostic.
func WithImportResolver(resolve func(specifier string) (ImportResolution, error)) Option {
	return func(c *Compiler) {
		c.opts.ResolveImport = func(specifier string) (driver.ImportResolution, error) {
			res, err := resolve(specifier)
			return driver.ImportResolution{Kind: driver.ImportKind(res.Kind), Payload: res.Payload}, err
		}
	}
}

// WithEmitHelpers controls whether the core helper prelude (list, vector,
// map, filter, reduce, str) is emitted when referenced. Defaults to true.
func WithEmitHelpers(emit bool) Option {
	return func(c *Compiler) { c.opts.EmitHelpers = emit }
}

// WithRecursionLimit overrides the macro expander's recursion depth limit.
func WithRecursionLimit(n int) Option {
	return func(c *Compiler) { c.opts.RecursionLimit = n }
}

// WithIterationLimit overrides the macro expander's fixed-point iteration
// limit.
func WithIterationLimit(n int) Option {
	return func(c *Compiler) { c.opts.IterationLimit = n }
}

// WithFilename sets the filename reported in diagnostics.
func WithFilename(name string) Option {
	return func(c *Compiler) { c.opts.Filename = name }
}

// New builds a Compiler. EmitHelpers defaults to true, matching the
// common case of compiling a single self-contained module.
func New(opts ...Option) *Compiler {
	c := &Compiler{opts: driver.Options{EmitHelpers: true}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile runs the full reader/macro/lower/codegen pipeline over source.
func (c *Compiler) Compile(ctx context.Context, source string) (Result, error) {
	res, err := driver.Compile(ctx, source, c.opts)
	return Result{Code: res.Code, Diagnostics: res.Diagnostics}, err
}

// ImportKind mirrors driver.ImportKind for callers who only import
// pkg/hql, not internal/driver.
type ImportKind string

const (
	ImportInline      ImportKind = ImportKind(driver.ImportInline)
	ImportPassthrough ImportKind = ImportKind(driver.ImportPassthrough)
)

// ImportResolution is the resolver callback's return value.
type ImportResolution struct {
	Kind    ImportKind
	Payload string
}
