package frontend

import (
	"fmt"
	"io"

	"github.com/arminbiere/satch/internal/checker"
	"github.com/arminbiere/satch/internal/sat"
)

// printStatistics prints the running counters both the solver and (when
// active) the checker maintain, each as a 'c ...' line, matching the
// DIMACS comment convention the reference binary's satch_statistics uses.
func printStatistics(w io.Writer, s *sat.Solver, chk *checker.Checker) {
	fmt.Fprintf(w, "c conflicts:        %d\n", s.TotalConflicts)
	fmt.Fprintf(w, "c restarts:         %d\n", s.TotalRestarts)
	fmt.Fprintf(w, "c iterations:       %d\n", s.TotalIterations)
	fmt.Fprintf(w, "c variables:        %d\n", s.NumVariables())
	fmt.Fprintf(w, "c constraints:      %d\n", s.NumConstraints())
	fmt.Fprintf(w, "c learnt clauses:   %d\n", s.NumLearnts())

	if chk == nil {
		return
	}
	cs := chk.Stats()
	fmt.Fprintf(w, "c checker originals: %d\n", cs.Original)
	fmt.Fprintf(w, "c checker learned:   %d\n", cs.Learned)
	fmt.Fprintf(w, "c checker deleted:   %d\n", cs.Deleted)
	fmt.Fprintf(w, "c checker collected: %d\n", cs.Collected)
}
