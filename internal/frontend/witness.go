package frontend

import (
	"fmt"
	"io"

	"github.com/arminbiere/satch/internal/sat"
)

// printWitness prints the satisfying assignment as a sequence of 'v ...'
// lines, each wrapped to at most 78 characters including the 'v' prefix,
// matching the SAT competition output format.
func printWitness(w io.Writer, col *sat.Collaborator, variables int) {
	var buf []byte
	flush := func() {
		if len(buf) == 0 {
			return
		}
		fmt.Fprintf(w, "v%s\n", buf)
		buf = buf[:0]
	}
	emit := func(lit int) {
		chunk := fmt.Sprintf(" %d", lit)
		if len(buf)+len(chunk) > 77 {
			flush()
		}
		buf = append(buf, chunk...)
	}
	for v := 1; v <= variables; v++ {
		emit(col.Val(v))
	}
	emit(0)
	flush()
}
