package checker

import "testing"

func addClause(c *Checker, lits ...int) {
	for _, l := range lits {
		c.AddLiteral(l)
	}
	c.AddOriginal()
}

func addLearned(c *Checker, lits ...int) {
	for _, l := range lits {
		c.AddLiteral(l)
	}
	c.AddLearned()
}

func deleteClause(c *Checker, lits ...int) {
	for _, l := range lits {
		c.AddLiteral(l)
	}
	c.Delete()
}

func newTestChecker(t *testing.T) (*Checker, *error) {
	t.Helper()
	var lastErr error
	c := New(WithAbort(func(err error) { lastErr = err }))
	return c, &lastErr
}

func TestEmptyFormulaReleases(t *testing.T) {
	c, errp := newTestChecker(t)
	c.Release()
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
}

func TestLearnedClauseNotImpliedAborts(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2)
	addLearned(c, 3)
	if *errp == nil {
		t.Fatal("expected fatal abort for unimplied learned clause, got none")
	}
}

func TestUnitForcesSatisfiedClauseNotStored(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1)
	addClause(c, -1, 2)
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
	if c.stats.Clauses != 0 {
		t.Fatalf("Clauses = %d, want 0 (no size-2 clause should be stored)", c.stats.Clauses)
	}
	l2, _ := fromExternal(2)
	if c.value(l2) != 1 {
		t.Fatalf("literal 2 should be forced true, value = %d", c.value(l2))
	}
}

func TestDeletePermutedMatches(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2, 3)
	deleteClause(c, 3, 1, 2)
	if *errp != nil {
		t.Fatalf("unexpected abort on permuted delete: %v", *errp)
	}
	if c.stats.Clauses != 0 {
		t.Fatalf("Clauses = %d, want 0 after delete", c.stats.Clauses)
	}
}

func TestDeleteSizeMismatchAborts(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2, 3)
	deleteClause(c, 1, 2)
	if *errp == nil {
		t.Fatal("expected fatal abort for size-mismatched delete, got none")
	}
}

func TestLeakCheckFiresOnUnreleasedClause(t *testing.T) {
	c, errp := newTestChecker(t)
	c.EnableLeakChecking(true)
	addClause(c, 1, 2)
	c.Release()
	if *errp == nil {
		t.Fatal("expected leak-check fatal abort, got none")
	}
}

func TestLeakCheckSkipsRootSatisfiedClause(t *testing.T) {
	c, errp := newTestChecker(t)
	c.EnableLeakChecking(true)
	addClause(c, 1)
	addClause(c, 1, 2) // trivial at add time (literal 1 already true), never stored
	c.Release()
	if *errp != nil {
		t.Fatalf("unexpected leak-check abort: %v", *errp)
	}
}

func TestLeakCheckSkippedWhenInconsistent(t *testing.T) {
	c, errp := newTestChecker(t)
	c.EnableLeakChecking(true)
	addClause(c, 1, 2)
	addClause(c, 1)
	addClause(c, -1) // contradicts the unit just committed
	if !c.Inconsistent() {
		t.Fatal("expected checker to be inconsistent")
	}
	c.Release()
	if *errp != nil {
		t.Fatalf("leak check should be skipped once inconsistent, got: %v", *errp)
	}
}

func TestEmptyLearnedClauseAcceptedWhenAlreadyInconsistent(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1)
	addClause(c, -1)
	if !c.Inconsistent() {
		t.Fatal("expected checker to be inconsistent after contradictory units")
	}
	addLearned(c) // empty learned clause
	if *errp != nil {
		t.Fatalf("unexpected abort adding empty learned clause once inconsistent: %v", *errp)
	}
}

func TestTrailAndMarksEmptyAfterEveryOperation(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2)
	addClause(c, -1, 2)
	addClause(c, -2, 3)
	addLearned(c, 3)
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
	if c.trail.Len() != 0 {
		t.Fatalf("trail not empty after operation: len = %d", c.trail.Len())
	}
	for i, m := range c.marks {
		if m != 0 {
			t.Fatalf("mark bit %d not cleared: %d", i, m)
		}
	}
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2)
	before := c.stats.Clauses
	addClause(c, 3, 4)
	deleteClause(c, 3, 4)
	after := c.stats.Clauses
	if before != after {
		t.Fatalf("clause count not restored by add+delete round trip: before=%d after=%d", before, after)
	}
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
}

func TestDuplicateAddsAreIndependentInsertions(t *testing.T) {
	c, errp := newTestChecker(t)
	addClause(c, 1, 2)
	addClause(c, 1, 2)
	if c.stats.Clauses != 2 {
		t.Fatalf("Clauses = %d, want 2 (adds are not deduplicated)", c.stats.Clauses)
	}
	deleteClause(c, 1, 2)
	if c.stats.Clauses != 1 {
		t.Fatalf("Clauses = %d, want 1 after deleting one instance", c.stats.Clauses)
	}
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
}

func TestGarbageCollectionReclaimsRootSatisfiedClauses(t *testing.T) {
	c, errp := newTestChecker(t)
	c.gcWait = 1 // force the next unit commit to trigger a collection
	addClause(c, 1, 2)
	addClause(c, 1) // unit: forces a GC pass since gcWait reaches 0 with NewUnits > 0
	if *errp != nil {
		t.Fatalf("unexpected abort: %v", *errp)
	}
	if c.stats.Collections == 0 {
		t.Fatal("expected at least one garbage collection pass")
	}
	if c.stats.Collected == 0 {
		t.Fatal("expected the root-satisfied clause [1,2] to be collected")
	}
}
