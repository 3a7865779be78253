//go:build meshdebug

// Package assert holds debug-only invariant checks for the mesh generators.
// Build with -tags meshdebug to enable them; release builds compile every
// check to an empty function.
package assert

import "fmt"

const Enabled = true

// That panics with the formatted message when cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
