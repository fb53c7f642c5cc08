package sat

import "testing"

func TestCollaboratorUnitClauseIsSatisfiable(t *testing.T) {
	c := NewCollaborator(DefaultOptions)
	for _, lit := range []int{1, 0} {
		if err := c.Add(lit); err != nil {
			t.Fatalf("Add(%d): %v", lit, err)
		}
	}
	if got := c.Solve(-1); got != ResultSatisfiable {
		t.Fatalf("Solve() = %v, want %v", got, ResultSatisfiable)
	}
	if got := c.Val(1); got != 1 {
		t.Fatalf("Val(1) = %d, want 1", got)
	}
	if got := c.Val(-1); got != 1 {
		t.Fatalf("Val(-1) = %d, want 1 (literal -1 is false, so -lit is reported)", got)
	}
}

func TestCollaboratorConflictingUnitsAreUnsatisfiable(t *testing.T) {
	c := NewCollaborator(DefaultOptions)
	for _, lit := range []int{1, 0, -1, 0} {
		if err := c.Add(lit); err != nil {
			t.Fatalf("Add(%d): %v", lit, err)
		}
	}
	if got := c.Solve(-1); got != ResultUnsatisfiable {
		t.Fatalf("Solve() = %v, want %v", got, ResultUnsatisfiable)
	}
}

func TestCollaboratorReserveGrowsVariables(t *testing.T) {
	c := NewCollaborator(DefaultOptions)
	c.Reserve(5)
	if got := c.Solver().NumVariables(); got != 5 {
		t.Fatalf("NumVariables() = %d, want 5", got)
	}
	// Adding a literal beyond the reserved range grows further rather than
	// panicking, matching IPASIR's "add implicitly declares" convention.
	if err := c.Add(8); err != nil {
		t.Fatalf("Add(8): %v", err)
	}
	if err := c.Add(0); err != nil {
		t.Fatalf("Add(0): %v", err)
	}
	if got := c.Solver().NumVariables(); got < 8 {
		t.Fatalf("NumVariables() = %d, want at least 8", got)
	}
}

type fakeProofSink struct {
	added   [][]int
	deleted [][]int
}

func (f *fakeProofSink) AddClause(lits []int) error {
	f.added = append(f.added, append([]int(nil), lits...))
	return nil
}

func (f *fakeProofSink) DeleteClause(lits []int) error {
	f.deleted = append(f.deleted, append([]int(nil), lits...))
	return nil
}

func TestRecordReportsLearnedClauseToProof(t *testing.T) {
	s := NewSolver(DefaultOptions)
	s.AddVariable() // external variable 1
	s.AddVariable() // external variable 2

	// Simulate variable 2 already decided true at decision level 1, so the
	// learnt-clause watch selection in NewClause has a real level to pick.
	s.trailLim = append(s.trailLim, 0)
	lit2 := PositiveLiteral(1)
	s.assigns[lit2] = True
	s.assigns[lit2.Opposite()] = False
	s.level[1] = s.decisionLevel()
	s.trail = append(s.trail, lit2)

	sink := &fakeProofSink{}
	s.TraceProof(sink)

	clause := []Literal{NegativeLiteral(0), NegativeLiteral(1)}
	s.record(clause)

	if len(sink.added) != 1 {
		t.Fatalf("expected one recorded clause, got %d", len(sink.added))
	}
	want := []int{-1, -2}
	got := sink.added[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("recorded clause = %v, want %v", got, want)
	}
}

func TestExternalInternalLiteralRoundTrip(t *testing.T) {
	for _, elit := range []int{1, -1, 2, -2, 17, -17} {
		if got := externalOf(internalOf(elit)); got != elit {
			t.Fatalf("round trip for %d produced %d", elit, got)
		}
	}
}
