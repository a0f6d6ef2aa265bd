// Package canon implements identifier canonicalization: the hyphen-case to
// camelCase rewriting performed on the boundary between the surface AST and
// the IR (spec.md §3 invariant 2, §4.C).
//
// Grounded on the teacher's pkg/ident contract (Normalize/Equal with a
// proven idempotence property), generalized from lowercase-folding to
// hyphen-segment folding.
package canon

import "strings"

// Canonicalize rewrites name according to spec.md's rule: "a-b-c" -> "aBC"
// (first segment lowercase, subsequent segments capitalized). Identifiers
// containing '.' are split at each dot and canonicalized independently,
// then rejoined with '.'. Identifiers with the "js/" interop prefix
// preserve the text following the prefix verbatim. Canonicalize is
// idempotent: Canonicalize(Canonicalize(n)) == Canonicalize(n).
func Canonicalize(name string) string {
	if strings.HasPrefix(name, "js/") {
		return "js/" + name[3:]
	}
	if strings.Contains(name, ".") {
		segments := strings.Split(name, ".")
		for i, seg := range segments {
			segments[i] = canonSegment(seg)
		}
		return strings.Join(segments, ".")
	}
	return canonSegment(name)
}

// canonSegment canonicalizes one dot-free segment: hyphen-delimited parts
// become camelCase, with the first part lowercased and every subsequent
// part capitalized. A segment with no hyphens that is already canonical
// (e.g. re-canonicalizing "aBC") passes through unchanged, which is what
// makes Canonicalize idempotent.
func canonSegment(seg string) string {
	if !strings.Contains(seg, "-") {
		return seg
	}
	parts := strings.Split(seg, "-")
	var sb strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			for _, r := range part {
				if r >= 'A' && r <= 'Z' {
					r = r - 'A' + 'a'
				}
				sb.WriteRune(r)
			}
			continue
		}
		sb.WriteString(capitalize(part))
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
