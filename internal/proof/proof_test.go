package proof

import (
	"bytes"
	"testing"
)

func TestASCIIAddClause(t *testing.T) {
	var buf bytes.Buffer
	w := NewASCII(&buf)
	if err := w.AddClause([]int{1, -2, 3}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got, want := buf.String(), "1 -2 3 0\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestASCIIDeleteClause(t *testing.T) {
	var buf bytes.Buffer
	w := NewASCII(&buf)
	if err := w.DeleteClause([]int{1, -2}); err != nil {
		t.Fatalf("DeleteClause: %v", err)
	}
	if got, want := buf.String(), "d 1 -2 0\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestASCIIEmptyClauseIsBareZero(t *testing.T) {
	var buf bytes.Buffer
	w := NewASCII(&buf)
	if err := w.AddClause(nil); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got, want := buf.String(), "0\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBinaryAddClauseSmallLiterals(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinary(&buf)
	if err := w.AddClause([]int{1, -2, 3}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	// fold(1)=2, fold(-2)=5, fold(3)=6, each < 0x80 so one byte apiece,
	// followed by the zero clause terminator.
	want := []byte{2, 5, 6, 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestBinaryDeleteClausePrefixByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinary(&buf)
	if err := w.DeleteClause([]int{1, -2}); err != nil {
		t.Fatalf("DeleteClause: %v", err)
	}
	want := []byte{'d', 2, 5, 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestBinaryMultiByteLiteral(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinary(&buf)
	// fold(100) = 200, which needs two varint bytes: low 7 bits (72) with
	// the continuation bit set, then the remaining high bit (1).
	if err := w.AddClause([]int{100}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	want := []byte{0x80 | 72, 1, 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestFoldLiteralNeverZero(t *testing.T) {
	for _, lit := range []int{1, -1, 2, -2, 1000, -1000} {
		if foldLiteral(lit) == 0 {
			t.Fatalf("foldLiteral(%d) = 0, would collide with the clause terminator", lit)
		}
	}
}
