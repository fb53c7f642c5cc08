package features

import "sort"

// InvalidPairs returns every pair of features that can never both be
// disabled at once: every transitively-implied ordered pair, plus every
// clashing pair, each oriented and then sorted by feature Name so the
// generated output is deterministic regardless of csv input order.
func (s *Set) InvalidPairs() [][2]int {
	var pairs [][2]int
	n := len(s.Features)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if s.TransitivelyImplied[i][j] {
				pairs = append(pairs, orient(s, i, j))
			}
		}
	}
	for _, c := range s.Clashing {
		pairs = append(pairs, orient(s, c[0], c[1]))
	}

	sort.Slice(pairs, func(a, b int) bool {
		na, nb := s.Features[pairs[a][0]].Name, s.Features[pairs[b][0]].Name
		if na != nb {
			return na < nb
		}
		return s.Features[pairs[a][1]].Name < s.Features[pairs[b][1]].Name
	})
	return pairs
}

func orient(s *Set, i, j int) [2]int {
	if s.Features[i].Name > s.Features[j].Name {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}
