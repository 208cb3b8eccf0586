package ringqueue_test

import (
	"testing"

	"github.com/momentics/netcore/internal/ringqueue"
)

func TestFIFOOrder(t *testing.T) {
	q := ringqueue.New()
	q.PushBack([]byte("a"))
	q.PushBack([]byte("b"))
	q.PushBack([]byte("c"))

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.PopFront()
		if !ok || string(got) != want {
			t.Fatalf("got %q, ok=%v, want %q", got, ok, want)
		}
	}
	if !q.Empty() {
		t.Fatal("queue should be empty")
	}
}

func TestPopFrontOnEmpty(t *testing.T) {
	q := ringqueue.New()
	if _, ok := q.PopFront(); ok {
		t.Fatal("expected ok=false on empty queue")
	}
}

func TestQueueOfFIFOOrder(t *testing.T) {
	type pair struct {
		a, b int
	}
	q := ringqueue.NewOf[pair]()
	q.PushBack(pair{1, 1})
	q.PushBack(pair{2, 4})
	q.PushBack(pair{3, 9})

	for _, want := range []pair{{1, 1}, {2, 4}, {3, 9}} {
		got, ok := q.PopFront()
		if !ok || got != want {
			t.Fatalf("got %+v, ok=%v, want %+v", got, ok, want)
		}
	}
	if _, ok := q.PopFront(); ok {
		t.Fatal("expected ok=false once drained")
	}
}
