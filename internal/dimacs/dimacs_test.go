package dimacs

import (
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	pending []int
	clauses [][]int
}

func (r *recorder) AddLiteral(lit int) { r.pending = append(r.pending, lit) }
func (r *recorder) AddOriginal() {
	clause := append([]int(nil), r.pending...)
	r.clauses = append(r.clauses, clause)
	r.pending = r.pending[:0]
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func clausesEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestParseCNF(t *testing.T) {
	path := writeTemp(t, "test.cnf", "c a comment\np cnf 3 2\n1 2 3 0\n-1 -2 0\n")
	rec := &recorder{}
	stats, err := Parse(path, false, rec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stats.DeclaredVariables != 3 || stats.DeclaredClauses != 2 || stats.ParsedClauses != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	want := [][]int{{1, 2, 3}, {-1, -2}}
	if !clausesEqual(rec.clauses, want) {
		t.Fatalf("clauses = %v, want %v", rec.clauses, want)
	}
}

func TestParseCommentImmediatelyAfterLiteral(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 2 1\n1c inline comment\n2 0\n")
	rec := &recorder{}
	_, err := Parse(path, false, rec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][]int{{1, 2}}
	if !clausesEqual(rec.clauses, want) {
		t.Fatalf("clauses = %v, want %v", rec.clauses, want)
	}
}

func TestParseCarriageReturnRequiresNewline(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 1 1\r\n1 0\r\n")
	rec := &recorder{}
	if _, err := Parse(path, false, rec); err != nil {
		t.Fatalf("Parse with CRLF: %v", err)
	}

	bad := writeTemp(t, "bad.cnf", "p cnf 1 1\n1 0\r \n")
	if _, err := Parse(bad, false, &recorder{}); err == nil {
		t.Fatal("expected error for bare carriage return, got none")
	}
}

func TestParseOverflowRejected(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 99999999999999999999 1\n1 0\n")
	if _, err := Parse(path, false, &recorder{}); err == nil {
		t.Fatal("expected overflow parse error, got none")
	}
}

func TestParseLiteralExceedsDeclaredMax(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 1 1\n2 0\n")
	if _, err := Parse(path, false, &recorder{}); err == nil {
		t.Fatal("expected out-of-range literal error, got none")
	}
}

func TestParseForceRelaxesVariableBound(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 1 1\n2 0\n")
	rec := &recorder{}
	stats, err := Parse(path, true, rec)
	if err != nil {
		t.Fatalf("Parse in force mode: %v", err)
	}
	if stats.DeclaredVariables != 2 {
		t.Fatalf("force mode should raise declared variables to observed max, got %d", stats.DeclaredVariables)
	}
}

func TestParseMissingTerminatorIsError(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 2 1\n1 2")
	if _, err := Parse(path, false, &recorder{}); err == nil {
		t.Fatal("expected missing-terminator parse error, got none")
	}
}

func TestParseTooFewClausesIsError(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 2 2\n1 2 0\n")
	if _, err := Parse(path, false, &recorder{}); err == nil {
		t.Fatal("expected missing-clause parse error, got none")
	}
}

func TestParseXNFDirectXOR(t *testing.T) {
	// x1 2 0 means literal(1) xor literal(2) = true: exactly one of
	// {1,2} must be true, i.e. not both true and not both false.
	path := writeTemp(t, "test.xnf", "p xnf 2 1\nx1 2 0\n")
	rec := &recorder{}
	stats, err := Parse(path, false, rec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !stats.XNF {
		t.Fatal("expected XNF format to be detected")
	}
	want := [][]int{{1, 2}, {-1, -2}}
	if !clausesEqual(rec.clauses, want) {
		t.Fatalf("clauses = %v, want %v", rec.clauses, want)
	}
}

func TestParseCNFRejectsXORWithoutForce(t *testing.T) {
	path := writeTemp(t, "test.cnf", "p cnf 2 1\nx1 2 0\n")
	if _, err := Parse(path, false, &recorder{}); err == nil {
		t.Fatal("expected error for XOR clause in plain CNF without force, got none")
	}
}

func TestParseXORIntroducesFreshTseitinVariable(t *testing.T) {
	path := writeTemp(t, "test.xnf", "p xnf 5 1\nx1 2 3 4 5 0\n")
	rec := &recorder{}
	stats, err := Parse(path, false, rec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stats.TseitinVariables != 1 {
		t.Fatalf("TseitinVariables = %d, want 1 (one gate needed to reduce 5 literals to <=4)", stats.TseitinVariables)
	}
	for _, clause := range rec.clauses {
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if v > 6 {
				t.Fatalf("literal %d references a variable beyond the expected Tseitin allocation", lit)
			}
		}
	}
}
