package features

import "fmt"

// reachableExcludingEdge reports whether dst is reachable from src through
// the direct-implication graph without taking the single edge src->via.
// Used to flag a listed implication as redundant when some other chain of
// implications already forces it.
func reachableExcludingEdge(s *Set, src, dst, via int) bool {
	visited := make([]bool, len(s.Features))
	var dfs func(u int) bool
	dfs = func(u int) bool {
		for _, v := range s.Implied[u] {
			if u == src && v == via {
				continue
			}
			if v == dst {
				return true
			}
			if !visited[v] {
				visited[v] = true
				if dfs(v) {
					return true
				}
			}
		}
		return false
	}
	return dfs(src)
}

// checkRedundantImplications warns about any implied.csv entry that is
// already implied transitively through some other chain, making the direct
// entry superfluous.
func checkRedundantImplications(s *Set, opts LoadOptions, diags *Diagnostics) error {
	for i := range s.Implied {
		for _, j := range s.Implied[i] {
			if reachableExcludingEdge(s, i, j, j) {
				if err := opts.warn(diags, "implied pair '%s,%s' transitively implied",
					s.Features[i].Option, s.Features[j].Option); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// computeTransitiveClosure fills s.TransitivelyImplied with the fixed point
// of the direct implication relation: repeatedly add i->k whenever i->j and
// j->k are both already known, until nothing changes.
func computeTransitiveClosure(s *Set) {
	n := len(s.Features)
	closure := make([][]bool, n)
	for i := range closure {
		closure[i] = make([]bool, n)
		for _, j := range s.Implied[i] {
			closure[i][j] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if !closure[i][j] {
					continue
				}
				for k := 0; k < n; k++ {
					if closure[j][k] && !closure[i][k] {
						closure[i][k] = true
						changed = true
					}
				}
			}
		}
	}

	s.TransitivelyImplied = closure
}

// checkCyclicDependencies warns whenever a feature transitively implies
// itself: the implication relation is meant to be a DAG.
func checkCyclicDependencies(s *Set, opts LoadOptions, diags *Diagnostics) error {
	for i := range s.Features {
		if s.TransitivelyImplied[i][i] {
			if err := opts.warn(diags, "option %q implies itself recursively", s.Features[i].Option); err != nil {
				return err
			}
		}
	}
	return checkRedundantImplications(s, opts, diags)
}

// checkClashingNotImplied rejects a clashing.csv entry that is also implied
// (in either direction): a pair can't simultaneously be "must never both be
// disabled" and "disabling one forces the other disabled".
func checkClashingNotImplied(s *Set) error {
	for _, pair := range s.Clashing {
		a, b := pair[0], pair[1]
		if s.TransitivelyImplied[a][b] {
			return fmt.Errorf("pair '%s,%s' transitively implied", s.Features[a].Option, s.Features[b].Option)
		}
		if s.TransitivelyImplied[b][a] {
			return fmt.Errorf("pair '%s,%s' reverse transitively implied", s.Features[a].Option, s.Features[b].Option)
		}
	}
	return nil
}
