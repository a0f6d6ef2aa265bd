// Package typeexpr parses the type annotations HQL surface syntax allows
// on parameters and function return positions. Per spec.md §1 these are
// parsed and preserved verbatim; the core never checks or infers them.
package typeexpr

import "strings"

// TypeExpr is the parsed shape of a type annotation. Exactly one
// constructor below is used to build any given value.
type TypeExpr struct {
	// Name is the annotation's head name (e.g. "Number", "Array", "Void").
	Name string
	// Args holds generic type arguments, e.g. the "String" in Array<String>.
	Args []*TypeExpr
}

// Void is the canonical representation of the `(-> Void)` return
// annotation, spec.md §4.B: "permitted and equivalent to no return type".
var Void = &TypeExpr{Name: "Void"}

// Named constructs a simple, non-generic annotation.
func Named(name string) *TypeExpr {
	return &TypeExpr{Name: name}
}

// Parse parses a type annotation's raw surface text, e.g. "Number",
// "Array<String>", into a TypeExpr. Syntax not matching this shape is
// preserved as a bare Named annotation using the raw text verbatim; HQL
// never rejects a type annotation as malformed, since types are carried,
// not validated (spec.md §1).
func Parse(raw string) *TypeExpr {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Named("")
	}
	lt := strings.IndexByte(raw, '<')
	if lt < 0 || !strings.HasSuffix(raw, ">") {
		return Named(raw)
	}
	name := raw[:lt]
	inner := raw[lt+1 : len(raw)-1]
	var args []*TypeExpr
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, Parse(inner[start:i]))
				start = i + 1
			}
		}
	}
	if start < len(inner) {
		args = append(args, Parse(inner[start:]))
	}
	return &TypeExpr{Name: name, Args: args}
}

// String renders the annotation back to its surface form.
func (t *TypeExpr) String() string {
	if t == nil || len(t.Args) == 0 {
		if t == nil {
			return ""
		}
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// IsVoid reports whether t denotes the `Void` return annotation.
func (t *TypeExpr) IsVoid() bool {
	return t != nil && t.Name == "Void" && len(t.Args) == 0
}
