package checker

// clause is the checker's in-memory representation of a stored clause: a
// dense literal array whose first two entries are the watched literals,
// plus one intrusive next-pointer per watch position. next[0] continues
// the watch list of literals[0]; next[1] continues the watch list of
// literals[1]. A clause of size 1 or 0 is never stored this way — units
// are applied directly to the trail and the empty clause marks the
// checker inconsistent.
type clause struct {
	next     [2]*clause
	literals []Lit
}

func newClause(lits []Lit) *clause {
	c := &clause{literals: make([]Lit, len(lits))}
	copy(c.literals, lits)
	return c
}

// sameLiterals reports whether c's literal set, as a set (order and
// duplicates already normalized out on both sides), equals lits.
func (c *clause) sameLiterals(lits []Lit, marks []int8) bool {
	if len(c.literals) != len(lits) {
		return false
	}
	for _, l := range c.literals {
		if marks[l] == 0 {
			return false
		}
	}
	return true
}
