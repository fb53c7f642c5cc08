package configgen

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Result mirrors the three-valued outcome of a bounded solve: a cover was
// found, no cover of this size exists, or the budget ran out before either
// could be determined.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

// conflictNanos is the wall-clock stand-in for one conflict's worth of
// search. The embedded solver (gini) exposes a time-bounded Try, not a
// conflict-bounded one, so a conflict budget is approximated by scaling it
// into a duration; see the configgen ledger entry for why.
const conflictNanos = 200 * time.Microsecond

// frame wraps one k-sized solver instance. Frames are kept around across
// search steps so that a budget increase picks up the same solver state
// rather than starting the search for that k from scratch.
type frame struct {
	k    int
	vars *variables
	g    *gini.Gini
	done Result // cached once the frame resolves definitively
}

func newFrame(catalog Catalog, k int, weak, symmetryBreaking bool) *frame {
	vars, clauses := encode(catalog, k, weak, symmetryBreaking)
	g := gini.New()
	for _, c := range clauses.clauses {
		for _, lit := range c {
			g.Add(z.Dimacs(lit))
		}
		g.Add(z.Dimacs(0))
	}
	return &frame{k: k, vars: vars, g: g}
}

// solve runs (or resumes) the frame's search under the given conflict
// budget. A non-negative budget bounds the attempt; negative means
// unbounded.
func (f *frame) solve(conflictBudget int64) Result {
	if f.done != Unknown {
		return f.done
	}
	if conflictBudget < 0 {
		if f.g.Solve() == 1 {
			f.done = Sat
		} else {
			f.done = Unsat
		}
		return f.done
	}
	switch f.g.Try(time.Duration(conflictBudget) * conflictNanos) {
	case 1:
		f.done = Sat
	case -1:
		f.done = Unsat
	}
	return f.done
}

// Configuration is one satisfying assignment's set of enabled option flags.
type Configuration []string

func (f *frame) extract(catalog Catalog) []Configuration {
	configs := make([]Configuration, f.k)
	for i := 0; i < f.k; i++ {
		var cfg Configuration
		for p, opt := range catalog.Options {
			if f.g.Value(z.Dimacs(f.vars.option[i][p])) {
				cfg = append(cfg, catalog.shorten(opt.Flag))
			}
		}
		configs[i] = cfg
	}
	return configs
}

// SearchOptions configures the geometric-then-binary-search cover search.
type SearchOptions struct {
	Catalog          Catalog
	Weak             bool // drop the "absent from some configuration" requirement
	SymmetryBreaking bool
	InitialBudget    int64 // conflict budget of the first solve; shared by all frames, doubled on every timeout
	Verbose          func(format string, args ...any)
}

func (o SearchOptions) log(format string, args ...any) {
	if o.Verbose != nil {
		o.Verbose(format, args...)
	}
}

// Search finds a minimum k for which o.Catalog's valid pairs can be covered
// by k configurations, returning that cover. It first grows k geometrically
// (2, 4, 8, ...) doubling the conflict budget on every timeout, keeping
// every attempted frame alive so a later budget increase resumes rather
// than restarts; once some k is found SAT it binary-searches downward for
// the smallest such k, reusing any frame already created for a candidate
// k during the geometric phase.
func Search(o SearchOptions) []Configuration {
	if o.InitialBudget <= 0 {
		o.InitialBudget = 100
	}

	frames := map[int]*frame{}
	frameFor := func(k int) *frame {
		f, ok := frames[k]
		if !ok {
			f = newFrame(o.Catalog, k, o.Weak, o.SymmetryBreaking)
			frames[k] = f
		}
		return f
	}

	budget := o.InitialBudget
	k := 2
	ub := -1
	for ub < 0 {
		f := frameFor(k)
		switch f.solve(budget) {
		case Sat:
			ub = k
		case Unsat:
			k *= 2
		case Unknown:
			budget *= 2
			o.log("k = %d timed out at budget %d, doubling to %d", k, budget/2, budget)
			// Re-attempt smaller, already-started frames first: one of
			// them may turn SAT once replenished, which gives a tighter
			// upper bound than continuing to grow k.
			for candidate := 2; candidate < k; candidate *= 2 {
				if cf, ok := frames[candidate]; ok && cf.done == Unknown {
					if cf.solve(budget) == Sat {
						ub = candidate
						break
					}
				}
			}
			if ub < 0 {
				k *= 2
			}
		}
	}

	lb := 2
	for lb+1 < ub {
		mid := lb + (ub-lb)/2
		f := frameFor(mid)
		result := f.solve(budget)
		if result == Unknown {
			budget *= 2
			o.log("k = %d timed out at budget %d during binary search, doubling to %d", mid, budget/2, budget)
			result = f.solve(budget)
		}
		switch result {
		case Sat:
			ub = mid
			lb = 2
		default: // Unsat or still Unknown after the retry: treat as a lower bound.
			lb = mid
		}
	}

	return frameFor(ub).extract(o.Catalog)
}
