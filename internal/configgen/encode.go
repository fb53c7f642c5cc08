package configgen

// variables assigns DIMACS-style variable numbers to every Boolean needed to
// encode "k configurations cover every valid pair of options": one option[i]
// [p] per configuration/option, one pair[i][p][q] per configuration/valid
// pair, and a lexicographic-ordering chain used for symmetry breaking.
type variables struct {
	catalog Catalog
	k       int

	option [][]int   // option[i][p] -> var id
	pair   [][][]int // pair[i][p][q] -> var id, 0 when the pair is clashing
	eq     [][]int   // eq[i][j] -> var id; "configs i-1 and i agree on options [0,j)"

	nvars int
}

func newVariables(catalog Catalog, k int) *variables {
	n := len(catalog.Options)
	v := &variables{
		catalog: catalog,
		k:       k,
		option:  make([][]int, k),
		pair:    make([][][]int, k),
		eq:      make([][]int, k),
	}

	fresh := func() int { v.nvars++; return v.nvars }

	for i := 0; i < k; i++ {
		v.option[i] = make([]int, n)
		for p := range v.option[i] {
			v.option[i][p] = fresh()
		}
	}

	for i := 0; i < k; i++ {
		v.pair[i] = make([][]int, n)
		for p := 0; p+1 < n; p++ {
			v.pair[i][p] = make([]int, n)
			for q := p + 1; q < n; q++ {
				if catalog.valid(p, q) {
					v.pair[i][p][q] = fresh()
				}
			}
		}
	}

	// eq[i][j] gates the lexicographic comparison between configuration i-1
	// and configuration i at option index j, for j in [1, n). eq[i][0] is a
	// built-in constant true and needs no variable.
	for i := 1; i < k; i++ {
		v.eq[i] = make([]int, n)
		for j := 1; j < n; j++ {
			v.eq[i][j] = fresh()
		}
	}

	return v
}

// clauseSink accumulates clauses as int-literal slices, 0-free (the 0
// terminator used on the wire is implicit: each call to add is one clause).
type clauseSink struct {
	nvars   int
	clauses [][]int
}

func (s *clauseSink) add(lits ...int) {
	s.clauses = append(s.clauses, append([]int(nil), lits...))
}

// encode builds the full clause set for k configurations. weak omits the
// absence constraints (every valid pair must also be missing from some
// configuration).
func encode(catalog Catalog, k int, weak bool, symmetryBreaking bool) (*variables, *clauseSink) {
	v := newVariables(catalog, k)
	n := len(catalog.Options)
	sink := &clauseSink{nvars: v.nvars}

	for i := 0; i < k; i++ {
		for p := 0; p+1 < n; p++ {
			for q := p + 1; q < n; q++ {
				if catalog.valid(p, q) {
					pv := v.pair[i][p][q]
					op, oq := v.option[i][p], v.option[i][q]
					sink.add(-pv, op)
					sink.add(-pv, oq)
					sink.add(-op, -oq, pv)
				} else {
					sink.add(-v.option[i][p], -v.option[i][q])
				}
			}
		}

		for p := 0; p < n; p++ {
			alts := catalog.requirementIndices(p)
			if len(alts) == 0 {
				continue
			}
			clause := make([]int, 0, len(alts)+1)
			clause = append(clause, -v.option[i][p])
			for _, q := range alts {
				clause = append(clause, v.option[i][q])
			}
			sink.add(clause...)
		}
	}

	for p := 0; p+1 < n; p++ {
		for q := p + 1; q < n; q++ {
			if !catalog.valid(p, q) {
				continue
			}
			cover := make([]int, 0, k)
			for i := 0; i < k; i++ {
				cover = append(cover, v.pair[i][p][q])
			}
			sink.add(cover...)

			if !weak {
				absent := make([]int, 0, k)
				for i := 0; i < k; i++ {
					absent = append(absent, -v.pair[i][p][q])
				}
				sink.add(absent...)
			}
		}
	}

	if symmetryBreaking {
		for i := 1; i < k; i++ {
			lexLeq(sink, v.option[i-1], v.option[i], v.eq[i])
		}
	}

	return v, sink
}

// lexLeq constrains u to be lexicographically no greater than w, using eq
// (indexed like v.eq[i], i.e. eq[j] means "u and w agree on [0, j)" for
// j >= 1; eq[0] is the implicit constant true) as chaining variables. The
// encoding is sound either way eq ends up valued: it only forces u <= w
// when eq actually tracks equality, and the clauses below pin eq to exactly
// that meaning, so the comparison can never cut off a genuinely distinct
// pair of configurations, only order them.
func lexLeq(sink *clauseSink, u, w, eq []int) {
	n := len(u)
	for j := 0; j < n; j++ {
		var eqPrev int // 0 means "constant true"
		if j > 0 {
			eqPrev = eq[j]
		}

		// eqPrev true and u[j] true forces w[j] true (u may not exceed w).
		if eqPrev == 0 {
			sink.add(-u[j], w[j])
		} else {
			sink.add(-eqPrev, -u[j], w[j])
		}

		if j+1 >= n {
			break
		}
		eqNext := eq[j+1]

		if eqPrev == 0 {
			sink.add(u[j], w[j], eqNext)
			sink.add(-u[j], -w[j], eqNext)
			sink.add(-eqNext, -u[j], w[j])
			sink.add(-eqNext, u[j], -w[j])
		} else {
			sink.add(-eqPrev, u[j], w[j], eqNext)
			sink.add(-eqPrev, -u[j], -w[j], eqNext)
			sink.add(-eqNext, eqPrev)
			sink.add(-eqNext, -u[j], w[j])
			sink.add(-eqNext, u[j], -w[j])
		}
	}
}
