package checker

import (
	"fmt"
	"os"
	"strings"
)

// FatalError reports one of the checker's "hard" failures: API misuse, a
// soundness violation (an unimplied learned clause, a missing delete
// target), or a leak-check violation at release. Every one of these is
// defined by the source algorithm as process-terminating; this package
// models that as a distinguished error type handed to an Abort hook rather
// than an unconditional os.Exit, so callers (including tests) can decide
// how fatal "fatal" is.
type FatalError struct {
	Op      string // the operation that detected the failure, e.g. "add_learned"
	Message string
	Clause  []int // offending clause in external literal form, if applicable
}

func (e *FatalError) Error() string {
	if len(e.Clause) == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	lits := make([]string, len(e.Clause))
	for i, l := range e.Clause {
		lits[i] = fmt.Sprintf("%d", l)
	}
	return fmt.Sprintf("%s: %s (clause [%s])", e.Op, e.Message, strings.Join(lits, " "))
}

func errAPIMisuse(op, msg string) *FatalError {
	return &FatalError{Op: op, Message: msg}
}

func errSoundness(op, msg string, clause []Lit) *FatalError {
	ext := make([]int, len(clause))
	for i, l := range clause {
		ext[i] = l.external()
	}
	return &FatalError{Op: op, Message: msg, Clause: ext}
}

// DefaultAbort is the checker's default Abort hook: it prints the error to
// stderr in the style of the rest of this module's diagnostics (a "c ..."
// prefixed line, matching the DIMACS comment convention the front-end and
// solver already use for stdout status lines) and terminates the process,
// mirroring the source algorithm's abort()-on-fatal-check semantics.
func DefaultAbort(err error) {
	fmt.Fprintf(os.Stderr, "c fatal checker error: %v\n", err)
	os.Exit(1)
}
