package sat

// Result is the outcome of a bounded search, mirroring the three values an
// IPASIR-style incremental solver returns from ipasir_solve.
type Result int

const (
	ResultUnknown       Result = 0
	ResultSatisfiable   Result = 10
	ResultUnsatisfiable Result = 20
)

func (r Result) String() string {
	switch r {
	case ResultSatisfiable:
		return "SATISFIABLE"
	case ResultUnsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// proofSink receives proof events in external literal form. internal/proof.Writer
// satisfies this (AddClause/DeleteClause both take []int and return error);
// the solver ignores write errors from a proof sink, matching satch's own
// trace_proof, which aborts the whole process on a write failure rather than
// threading an error back through every call site that might record a
// clause — so the boundary here is "best effort, fatal elsewhere" rather
// than "errors silently swallowed".
type proofSink interface {
	AddClause(lits []int) error
	DeleteClause(lits []int) error
}

// TraceProof attaches a proof sink that receives one event per learned
// clause and one per clause dropped from the database. Pass nil to detach.
func (s *Solver) TraceProof(p proofSink) {
	s.proof = p
}

func (s *Solver) traceDeletion(c *Clause) {
	if s.proof == nil {
		return
	}
	s.proof.DeleteClause(externalLits(c.literals))
}

// externalOf maps an internal, zero-indexed Literal back to the signed,
// one-indexed external literal space every other package in this module
// uses (internal = 2*(var-1) + sign, i.e. the inverse of PositiveLiteral /
// NegativeLiteral).
func externalOf(l Literal) int {
	v := l.VarID() + 1
	if !l.IsPositive() {
		return -v
	}
	return v
}

func externalLits(lits []Literal) []int {
	out := make([]int, len(lits))
	for i, l := range lits {
		out[i] = externalOf(l)
	}
	return out
}

func internalOf(elit int) Literal {
	v := elit
	if v < 0 {
		v = -v
	}
	v--
	if elit < 0 {
		return NegativeLiteral(v)
	}
	return PositiveLiteral(v)
}

// Collaborator is the IPASIR-like external contract specified for the
// solver: reserve a variable range, add literals to build up clauses
// 0-terminated, run a conflict-bounded search, and read back the model.
// It wraps *Solver rather than replacing it, so callers needing the richer
// internal API (used by cmd/satch's statistics printing) still have it.
type Collaborator struct {
	s       *Solver
	pending []Literal
}

// NewCollaborator returns a fresh solver behind the IPASIR-like contract.
func NewCollaborator(ops Options) *Collaborator {
	return &Collaborator{s: NewSolver(ops)}
}

// Solver exposes the wrapped engine for call sites that need statistics,
// model inspection, or proof tracing beyond the basic contract.
func (c *Collaborator) Solver() *Solver { return c.s }

// Reserve grows the variable set, if needed, so that external variable
// maxVar is valid.
func (c *Collaborator) Reserve(maxVar int) {
	for c.s.NumVariables() < maxVar {
		c.s.AddVariable()
	}
}

// Add accumulates one literal of the pending clause, or commits it when
// lit is 0 — the IPASIR convention.
func (c *Collaborator) Add(lit int) error {
	if lit == 0 {
		clause := append([]Literal(nil), c.pending...)
		c.pending = c.pending[:0]
		return c.s.AddClause(clause)
	}
	c.Reserve(abs(lit))
	c.pending = append(c.pending, internalOf(lit))
	return nil
}

// Solve runs a bounded search. A negative conflictLimit means unbounded.
func (c *Collaborator) Solve(conflictLimit int64) Result {
	if conflictLimit >= 0 {
		c.s.hasStopCond = true
		c.s.maxConflict = conflictLimit
	} else {
		c.s.maxConflict = -1
	}
	switch c.s.Solve() {
	case True:
		return ResultSatisfiable
	case False:
		return ResultUnsatisfiable
	default:
		return ResultUnknown
	}
}

// Val reports the model value of an external literal after a satisfiable
// Solve: lit itself if that literal is true under the model, -lit if false.
func (c *Collaborator) Val(lit int) int {
	v := abs(lit) - 1
	varTrue := c.s.VarValue(v) == True
	if n := len(c.s.Models); n > 0 && v < len(c.s.Models[n-1]) {
		// Solve backtracks to the root level before returning, so the
		// model is read from the last saved one.
		varTrue = c.s.Models[n-1][v]
	}
	litTrue := varTrue == (lit > 0)
	if litTrue {
		return lit
	}
	return -lit
}

// TraceProof wires a proof sink into the underlying solver.
func (c *Collaborator) TraceProof(p proofSink) {
	c.s.TraceProof(p)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
