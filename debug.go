package sway

import (
	"fmt"
	"os"
)

// warnf reports a non-fatal animation error. In debug mode it panics with a
// descriptive message so bugs surface immediately during development; in
// release mode it warns on stderr and the offending request degrades to a
// no-op or partial application.
func (a *Animator) warnf(format string, args ...any) {
	if a.Debug {
		panic(fmt.Sprintf("sway debug: "+format, args...))
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sway] warning: "+format+"\n", args...)
}
