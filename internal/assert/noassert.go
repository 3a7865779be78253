//go:build !meshdebug

package assert

const Enabled = false

func That(cond bool, format string, args ...any) {}
