// Package checker implements an online, incremental DRUP proof checker: it
// receives the same clause events a SAT solver emits (original clauses,
// learned clauses, deletions) and proves, via root-level unit propagation,
// that every learned clause is implied by the clauses seen so far.
//
// The checker never backtracks past the root level: every propagated
// literal is a permanent fact. This is what makes online DRUP checking
// simple (no decision stack, no conflict analysis) at the cost of being
// slower than a real solver for the same formula.
package checker

import (
	"fmt"

	"github.com/arminbiere/satch/internal/stack"
)

const gcInterval = 10000

// Stats holds the checker's running counters.
type Stats struct {
	Original    uint64
	Learned     uint64
	Deleted     uint64
	Collected   uint64
	Collections uint64
	Clauses     uint64 // alive
	Remained    uint64 // set at Release if leak checking fires
	NewUnits    uint64 // units committed since the last collection
}

// Checker is a single checker instance. The zero value is not usable; call
// New.
type Checker struct {
	size    int
	marks   []int8
	values  []int8
	watches []*clause

	trail    stack.Stack[Lit]
	propHead int

	pending []Lit

	inconsistent bool

	verbose   bool
	logging   bool
	leakCheck bool

	stats Stats

	gcWait uint64

	abort func(error)
}

// Option configures a Checker at construction time.
type Option func(*Checker)

// WithAbort overrides the hook invoked on a fatal check failure. The
// default hook (DefaultAbort) prints the error and terminates the process.
func WithAbort(f func(error)) Option {
	return func(c *Checker) { c.abort = f }
}

// New allocates a fresh checker.
func New(opts ...Option) *Checker {
	c := &Checker{abort: DefaultAbort, gcWait: gcInterval}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetVerbose toggles verbose progress reporting.
func (c *Checker) SetVerbose(v bool) { c.verbose = v }

// SetLogging toggles per-operation debug tracing.
func (c *Checker) SetLogging(v bool) { c.logging = v }

// EnableLeakChecking toggles the end-of-run assertion that every
// non-root-satisfied clause has been explicitly deleted.
func (c *Checker) EnableLeakChecking(v bool) { c.leakCheck = v }

// Stats returns a snapshot of the checker's counters.
func (c *Checker) Stats() Stats { return c.stats }

// Inconsistent reports whether the checker has proven the formula UNSAT.
func (c *Checker) Inconsistent() bool { return c.inconsistent }

// AddLiteral appends lit to the pending clause. lit must not be zero or
// math.MinInt32; violating this is an API misuse fatal error.
func (c *Checker) AddLiteral(elit int) {
	l, err := fromExternal(elit)
	if err != nil {
		c.abort(err)
		return
	}
	c.reserve(l)
	c.reserve(l.negate())
	c.pending = append(c.pending, l)
}

// AddOriginal commits the pending clause as an original (given) clause.
func (c *Checker) AddOriginal() {
	lits, trivial := c.normalizePending()
	c.pending = c.pending[:0]
	c.stats.Original++
	if trivial {
		return
	}
	c.ingest(lits)
}

// AddLearned verifies the pending clause is DRUP-implied by the clauses
// added so far (asymmetric tautology check via unit propagation) and, if
// so, commits it exactly as AddOriginal would. If the clause is not
// implied this fatally aborts.
func (c *Checker) AddLearned() {
	lits, trivial := c.normalizePending()
	c.pending = c.pending[:0]
	c.stats.Learned++
	if trivial {
		return
	}
	if !c.checkImplied(lits) {
		c.abort(errSoundness("add_learned", "learned clause not implied", lits))
		return
	}
	c.ingest(lits)
}

// Delete removes a clause whose literal set matches the pending clause
// exactly (modulo order and duplicates). If no such clause exists this
// fatally aborts.
func (c *Checker) Delete() {
	lits, trivial := c.normalizePending()
	c.pending = c.pending[:0]
	c.stats.Deleted++
	if trivial {
		return
	}
	if len(lits) < 2 {
		c.abort(errSoundness("delete", "clause requested to delete not found", lits))
		return
	}
	for _, l := range lits {
		c.marks[l] = 1
	}
	target := c.findMatching(lits)
	for _, l := range lits {
		c.marks[l] = 0
	}
	if target == nil {
		c.abort(errSoundness("delete", "clause requested to delete not found", lits))
		return
	}
	c.unlinkAndFree(target)
}

// Release frees the checker. If leak checking is enabled and the formula
// was never proven inconsistent, any surviving non-root-satisfied clause
// triggers a fatal abort instead.
func (c *Checker) Release() {
	if c.leakCheck && !c.inconsistent {
		if remained := c.countAlive(); remained > 0 {
			c.stats.Remained = uint64(remained)
			msg := fmt.Sprintf("%d clause(s) remain(ed)", remained)
			c.abort(errAPIMisuse("release", msg))
			return
		}
	}
	c.freeAll()
}

// --- normalization -----------------------------------------------------

func (c *Checker) normalizePending() ([]Lit, bool) {
	trivial := false
	var result []Lit
	for _, l := range c.pending {
		if c.value(l) == 1 {
			trivial = true
		}
		if c.marks[l] == 1 {
			continue
		}
		if c.marks[l.negate()] == 1 {
			trivial = true
		}
		c.marks[l] = 1
		result = append(result, l)
	}
	for _, l := range result {
		c.marks[l] = 0
	}
	return result, trivial
}

// --- commit / DRUP check -------------------------------------------------

// ingest partitions non-false literals to the front (as original-add does)
// and either marks the checker inconsistent (no non-false literal left),
// commits a forced unit, or stores a genuine clause. Every call counts down
// the wait before the next garbage collection.
func (c *Checker) ingest(lits []Lit) {
	if c.gcWait > 0 {
		c.gcWait--
	}
	nf := partitionNonFalse(lits, c.values)
	switch {
	case nf == 0:
		c.inconsistent = true
	case nf == 1:
		c.assign(lits[0])
		ok := c.propagate()
		c.clearTrailPermanent()
		if !ok {
			c.inconsistent = true
		}
		c.stats.NewUnits++
		c.maybeGC()
	default:
		cl := newClause(lits)
		c.watch(cl, 0)
		c.watch(cl, 1)
		c.stats.Clauses++
	}
}

// partitionNonFalse moves every literal whose current value is not false to
// the front of lits and returns how many such literals there are.
func partitionNonFalse(lits []Lit, values []int8) int {
	k := 0
	for i, l := range lits {
		v := int8(0)
		if int(l) < len(values) {
			v = values[l]
		}
		if v != -1 {
			lits[i], lits[k] = lits[k], lits[i]
			k++
		}
	}
	return k
}

// checkImplied performs the DRUP (asymmetric tautology) check: assume every
// unassigned literal of lits false, in order, propagating after each. It
// succeeds if a literal is already true (clause subsumed) or propagation
// conflicts. The trail is always restored to its pre-call state.
func (c *Checker) checkImplied(lits []Lit) bool {
	if c.inconsistent {
		return true
	}
	saved := c.trail.Len()
	success := false
	for _, l := range lits {
		switch c.value(l) {
		case 1:
			success = true
		case -1:
			// already false: consistent with the assumption, nothing to do.
		default:
			c.assign(l.negate())
			if !c.propagate() {
				success = true
			}
		}
		if success {
			break
		}
	}
	c.backtrackTo(saved)
	return success
}

// --- watch list plumbing -------------------------------------------------

func (c *Checker) watch(cl *clause, pos int) {
	lit := cl.literals[pos]
	cl.next[pos] = c.watches[lit]
	c.watches[lit] = cl
}

// findMatching locates the stored clause whose literal set equals lits. A
// clause is only linked into the watch lists of its current two watched
// literals, which after propagation swaps need not include lits[0]; so this
// tries every literal of lits in turn, exactly as the search the delete
// operation performs in the reference algorithm.
func (c *Checker) findMatching(lits []Lit) *clause {
	for _, l0 := range lits {
		cur := c.watches[l0]
		for cur != nil {
			pos := 0
			if cur.literals[0] != l0 {
				pos = 1
			}
			next := cur.next[pos]
			if cur.sameLiterals(lits, c.marks) {
				return cur
			}
			cur = next
		}
	}
	return nil
}

func (c *Checker) unlinkFromList(lit Lit, target *clause) {
	cur := c.watches[lit]
	var prev *clause
	prevPos := 0
	for cur != nil {
		pos := 0
		if cur.literals[0] != lit {
			pos = 1
		}
		next := cur.next[pos]
		if cur == target {
			if prev == nil {
				c.watches[lit] = next
			} else {
				prev.next[prevPos] = next
			}
			return
		}
		prev = cur
		prevPos = pos
		cur = next
	}
}

func (c *Checker) unlinkAndFree(cl *clause) {
	c.unlinkFromList(cl.literals[0], cl)
	c.unlinkFromList(cl.literals[1], cl)
	cl.literals = nil
	c.stats.Clauses--
}

// --- propagation ----------------------------------------------------------

// propagate runs two-watched-literal unit propagation over every trail
// entry not yet processed. It returns false immediately on conflict,
// leaving the trail and watch lists exactly as they were at that point (the
// caller is always about to either abort or backtrack).
func (c *Checker) propagate() bool {
	for c.propHead < c.trail.Len() {
		l := c.trail.At(c.propHead)
		c.propHead++
		notLit := l.negate()

		var prev *clause
		prevPos := 0
		cur := c.watches[notLit]
		for cur != nil {
			pos := 0
			if cur.literals[0] != notLit {
				pos = 1
			}
			next := cur.next[pos]
			other := cur.literals[1-pos]

			if c.value(other) == 1 {
				prev, prevPos, cur = cur, pos, next
				continue
			}

			replaced := false
			for i := 2; i < len(cur.literals); i++ {
				if c.value(cur.literals[i]) != -1 {
					cur.literals[pos], cur.literals[i] = cur.literals[i], cur.literals[pos]
					if prev == nil {
						c.watches[notLit] = next
					} else {
						prev.next[prevPos] = next
					}
					newLit := cur.literals[pos]
					cur.next[pos] = c.watches[newLit]
					c.watches[newLit] = cur
					replaced = true
					break
				}
			}
			if replaced {
				cur = next
				continue
			}

			if c.value(other) == -1 {
				return false
			}
			c.assign(other)
			prev, prevPos, cur = cur, pos, next
		}
	}
	return true
}

// --- assignment / trail ---------------------------------------------------

func (c *Checker) value(l Lit) int8 {
	if int(l) >= c.size {
		return 0
	}
	return c.values[l]
}

func (c *Checker) assign(l Lit) {
	c.reserve(l)
	c.reserve(l.negate())
	c.values[l] = 1
	c.values[l.negate()] = -1
	c.trail.Push(l)
}

// clearTrailPermanent drains the trail without undoing assignments: used
// after an original/learned-unit commit, whose consequences are permanent.
func (c *Checker) clearTrailPermanent() {
	c.trail.Clear()
	c.propHead = 0
}

// backtrackTo unassigns every trail entry pushed after index saved,
// restoring the checker to the state it was in before a DRUP check.
func (c *Checker) backtrackTo(saved int) {
	for c.trail.Len() > saved {
		l := c.trail.Pop()
		c.values[l] = 0
		c.values[l.negate()] = 0
	}
	if c.propHead > saved {
		c.propHead = saved
	}
}

// --- storage growth --------------------------------------------------------

func (c *Checker) reserve(l Lit) {
	needed := int(l) + 1
	if needed <= c.size {
		return
	}
	newSize := c.size
	if newSize == 0 {
		newSize = 1
	}
	for newSize < needed {
		newSize *= 2
	}
	grownMarks := make([]int8, newSize)
	copy(grownMarks, c.marks)
	c.marks = grownMarks

	grownValues := make([]int8, newSize)
	copy(grownValues, c.values)
	c.values = grownValues

	grownWatches := make([]*clause, newSize)
	copy(grownWatches, c.watches)
	c.watches = grownWatches

	c.size = newSize
}

// --- garbage collection ----------------------------------------------------

func (c *Checker) maybeGC() {
	if c.gcWait == 0 && c.stats.NewUnits > 0 {
		c.gc()
		c.stats.Collections++
		wait := ^uint64(0) // saturate on overflow
		if c.stats.Collections <= wait/gcInterval {
			wait = c.stats.Collections * gcInterval
		}
		c.gcWait = wait
		c.stats.NewUnits = 0
	}
}

func (c *Checker) clauseSatisfied(cl *clause) bool {
	for _, l := range cl.literals {
		if c.value(l) == 1 {
			return true
		}
	}
	return false
}

// gc reclaims every root-satisfied clause. It runs in three full passes
// over all literals, exactly as the watch-list graph requires: (1) detach
// every clause's second-watch appearance so each surviving clause is
// reachable exactly once, via its first watch; (2) free clauses that are
// root-satisfied; (3) reattach second watches for survivors.
func (c *Checker) gc() {
	n := c.size

	for l := 0; l < n; l++ {
		lit := Lit(l)
		var head *clause
		cur := c.watches[lit]
		for cur != nil {
			pos := 0
			if cur.literals[0] != lit {
				pos = 1
			}
			next := cur.next[pos]
			if pos == 0 {
				cur.next[0] = head
				head = cur
			}
			cur = next
		}
		c.watches[lit] = head
	}

	for l := 0; l < n; l++ {
		lit := Lit(l)
		var survivors *clause
		cur := c.watches[lit]
		for cur != nil {
			next := cur.next[0]
			if c.clauseSatisfied(cur) {
				cur.literals = nil
				c.stats.Collected++
				c.stats.Clauses--
			} else {
				cur.next[0] = survivors
				survivors = cur
			}
			cur = next
		}
		c.watches[lit] = survivors
	}

	snapshot := make([]*clause, n)
	copy(snapshot, c.watches)
	for l := 0; l < n; l++ {
		cur := snapshot[l]
		for cur != nil {
			next := cur.next[0]
			other := cur.literals[1]
			cur.next[1] = c.watches[other]
			c.watches[other] = cur
			cur = next
		}
	}
}

// countAlive counts clauses (each exactly once, via its first watch) that
// are not root-satisfied, without mutating the watch lists.
func (c *Checker) countAlive() int {
	count := 0
	for l := 0; l < c.size; l++ {
		lit := Lit(l)
		cur := c.watches[lit]
		for cur != nil {
			pos := 0
			if cur.literals[0] != lit {
				pos = 1
			}
			next := cur.next[pos]
			if pos == 0 && !c.clauseSatisfied(cur) {
				count++
			}
			cur = next
		}
	}
	return count
}

// freeAll disconnects second watches (so every clause is visited exactly
// once) then releases every clause.
func (c *Checker) freeAll() {
	n := c.size
	for l := 0; l < n; l++ {
		lit := Lit(l)
		var head *clause
		cur := c.watches[lit]
		for cur != nil {
			pos := 0
			if cur.literals[0] != lit {
				pos = 1
			}
			next := cur.next[pos]
			if pos == 0 {
				cur.next[0] = head
				head = cur
			}
			cur = next
		}
		c.watches[lit] = head
	}
	for l := 0; l < n; l++ {
		cur := c.watches[l]
		for cur != nil {
			next := cur.next[0]
			cur.literals = nil
			cur = next
		}
		c.watches[l] = nil
	}
	c.values = nil
	c.marks = nil
	c.trail.Release()
	c.size = 0
}
