package frontend

import (
	"io"
	"log"
)

// logger wraps the standard library's log.Logger the way the reference
// binary's '-l/--log' debug-trace toggle does: a leveled message sink that
// is simply pointed at io.Discard when disabled, rather than branching on
// a boolean at every call site.
type logger struct {
	*log.Logger
}

func newLogger(w io.Writer, enabled bool) *logger {
	if !enabled {
		w = io.Discard
	}
	return &logger{Logger: log.New(w, "c LOG ", 0)}
}

// Logf records one debug-trace line; a no-op when logging is disabled.
func (l *logger) Logf(format string, args ...any) {
	l.Printf(format, args...)
}
