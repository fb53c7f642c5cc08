package configgen

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDIMACS emits the CNF encoding of "k configurations cover every valid
// pair" without solving it, in the wire format described for C4: a leading
// comment block naming the variable assignment, a single header line, and
// the clauses themselves.
func WriteDIMACS(w io.Writer, catalog Catalog, k int, weak, symmetryBreaking bool) error {
	vars, clauses := encode(catalog, k, weak, symmetryBreaking)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "c gencombi --dimacs %d\n", k)
	for i := 0; i < k; i++ {
		for p := range catalog.Options {
			fmt.Fprintf(bw, "c option[%d,%d] = %d\n", i, p, vars.option[i][p])
		}
		for p := 0; p+1 < len(catalog.Options); p++ {
			for q := p + 1; q < len(catalog.Options); q++ {
				if id := vars.pair[i][p][q]; id != 0 {
					fmt.Fprintf(bw, "c pair[%d,%d,%d] = %d\n", i, p, q, id)
				}
			}
		}
	}

	fmt.Fprintf(bw, "p cnf %d %d\n", clauses.nvars, len(clauses.clauses))
	for _, c := range clauses.clauses {
		for _, lit := range c {
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintln(bw, "0")
	}

	return bw.Flush()
}
