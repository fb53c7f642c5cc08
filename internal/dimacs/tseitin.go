package dimacs

// tseitinAllocator hands out fresh variable indices for XOR-to-CNF
// rewriting. In strict (non-force) parsing these start one past the
// declared maximum variable; in force mode they start one past the
// observed maximum, fixed only once the whole input has been scanned —
// otherwise a Tseitin variable could collide with a variable appearing
// later in the file.
type tseitinAllocator struct {
	next int
}

func (a *tseitinAllocator) fresh() int {
	a.next++
	return a.next
}

// emitXOR rewrites an XOR clause (literals whose variables must satisfy a
// parity constraint, negative literals flipping the required parity) into
// CNF, via a balanced ternary tree: repeatedly replace the three front
// literals with one fresh Tseitin variable standing for their three-way
// XOR, enqueueing it for the next layer, until four or fewer literals
// remain, at which point they are encoded directly with no further
// variable introduced.
func (p *parser) emitXOR(lits []int) {
	queue := append([]int(nil), lits...)
	for len(queue) > 4 {
		a, b, c := queue[0], queue[1], queue[2]
		queue = queue[3:]
		t := p.tseitin.fresh()
		emitXORGate(a, b, c, t, p.sink)
		queue = append(queue, t)
	}
	emitDirectXOR(queue, p.sink)
}

// emitXORGate emits the full biconditional t <-> (a xor b xor c) as CNF: an
// odd-parity constraint over the four literals a, b, c, not(t), which
// requires 2^(4-1) = 8 clauses — the standard definitional clause set for
// an XOR gate with an explicit output variable. It is the same 2^(n-1)
// closed form emitDirectXOR uses, applied to four literals (a gate-free
// XOR clause over a, b, c alone needs only 4).
func emitXORGate(a, b, c, t int, sink Emitter) {
	emitParity([]int{a, b, c, -t}, sink)
}

// emitDirectXOR emits the CNF for "the XOR of lits equals 1" (an odd number
// of the underlying variables, after sign absorption, are true) with no
// extra gate variable: 2^(n-1) clauses over n literals. Spec sizes 0-4 are
// all handled by this closed form; size 0 degenerates to the empty XOR
// (which is unsatisfiable, since it demands an odd count of zero literals)
// and so emits the empty clause.
func emitDirectXOR(lits []int, sink Emitter) {
	emitParity(lits, sink)
}

// emitParity emits, for n literals, every clause ruling out an assignment
// with an even number of the literals true — i.e. it enforces "an odd
// number of these literals are true", the standard XOR-clause semantics.
// There are 2^(n-1) such clauses for n >= 1, and exactly one (the empty
// clause) for n == 0.
func emitParity(lits []int, sink Emitter) {
	n := len(lits)
	if n == 0 {
		sink.AddOriginal()
		return
	}
	for mask := 0; mask < 1<<n; mask++ {
		if parityOf(mask) != 0 {
			continue // odd-weight assignments already satisfy the constraint
		}
		for i, lit := range lits {
			if mask&(1<<i) != 0 {
				sink.AddLiteral(-lit)
			} else {
				sink.AddLiteral(lit)
			}
		}
		sink.AddOriginal()
	}
}

func parityOf(mask int) int {
	p := 0
	for mask != 0 {
		p ^= mask & 1
		mask >>= 1
	}
	return p
}
