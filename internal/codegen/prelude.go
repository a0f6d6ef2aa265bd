package codegen

// helperNames are the core runtime shims referenced by the glossary's
// "Helper prelude" entry: list, vector, map, filter, reduce, str. A
// program that calls one of these by name (in callee position) triggers
// prelude emission when Options.EmitHelpers is set.
var helperNames = map[string]bool{
	"list":   true,
	"vector": true,
	"map":    true,
	"filter": true,
	"reduce": true,
	"str":    true,
}

// helperPrelude is emitted verbatim, exactly once, ahead of the generated
// program body when any helper name above is referenced and emission is
// not suppressed (spec.md §4.E).
const helperPrelude = `const list = (...items) => items;
const vector = (...items) => items;
const map = (fn, xs) => xs.map(fn);
const filter = (fn, xs) => xs.filter(fn);
const reduce = (fn, init, xs) => xs.reduce(fn, init);
const str = (...parts) => parts.join("");
`
