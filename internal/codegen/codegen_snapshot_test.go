package codegen_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestCompositeProgramSnapshot exercises every emission shape together in
// one program and pins the result with go-snaps, the way the teacher's
// interpreter fixtures pin runtime output (internal/interp/fixture_test.go).
func TestCompositeProgramSnapshot(t *testing.T) {
	out := mustGenerate(t, `
(import fs "node:fs")
(defenum Color red green blue)
(defn greet (name) (str "Hello, " name))
(defn subtract (x: Number y: Number) (- x y))
(def my-list [1 2 3])
(def my-map {label : "widgets" count : 3})
(for [i (range 3)] (print i))
(for [item my-list] (print item))
(cond (< 1 0) "neg" true "non-neg")
(export "greet" greet)
`)
	snaps.MatchSnapshot(t, "composite_program", out)
}
