package stack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStackPushPop(t *testing.T) {
	var s Stack[int]
	for i := 0; i < 16; i++ {
		s.Push(i)
	}
	if got, want := s.Len(), 16; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	var got []int
	for !s.Empty() {
		got = append(got, s.Pop())
	}
	want := []int{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
}

func TestStackCapacityDoubles(t *testing.T) {
	var s Stack[int]
	wantCaps := map[int]int{
		1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16,
	}
	for i := 1; i <= 9; i++ {
		s.Push(i)
		if want, ok := wantCaps[i]; ok && s.Cap() != want {
			t.Errorf("after %d pushes: Cap() = %d, want %d", i, s.Cap(), want)
		}
	}
}

func TestStackPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on empty stack did not panic")
		}
	}()
	var s Stack[int]
	s.Pop()
}

func TestQueueFIFO(t *testing.T) {
	var q Queue[string]
	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")

	var got []string
	for !q.Empty() {
		got = append(got, q.Dequeue())
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dequeue order mismatch (-want +got):\n%s", diff)
	}
}

func TestQueueNeverCompacts(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	q.Dequeue()
	q.Dequeue()
	// head has advanced but the backing stack still holds 5 logical slots.
	if got, want := q.buf.Len(), 5; got != want {
		t.Fatalf("buf.Len() = %d, want %d (queue must not compact on Dequeue)", got, want)
	}
	if got, want := q.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
}

func TestQueueReset(t *testing.T) {
	var q Queue[int]
	q.Enqueue(1)
	q.Enqueue(2)
	q.Dequeue()
	q.Reset()
	if !q.Empty() {
		t.Fatal("queue not empty after Reset")
	}
	if q.buf.Len() != 0 {
		t.Fatalf("buf.Len() = %d after Reset, want 0", q.buf.Len())
	}
}
