package coalesce

import "testing"

func TestPendingIDQueueFIFO(t *testing.T) {
	q := NewPendingIDQueue(4)

	for _, id := range []uint32{1, 2, 3} {
		if !q.Push(id) {
			t.Fatalf("Push(%d) = false, want true", id)
		}
	}
	for _, want := range []uint32{1, 2, 3} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%d,%v), want (%d,true)", got, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Errorf("Pop() on an empty queue = ok, want not ok")
	}
}

func TestPendingIDQueueOverflowFlag(t *testing.T) {
	q := NewPendingIDQueue(2) // rounds up to 2

	if !q.Push(1) || !q.Push(2) {
		t.Fatalf("Push() on a fresh queue with room = false, want true")
	}
	if q.Push(3) {
		t.Errorf("Push() on a full queue = true, want false")
	}
	if !q.TakeOverflowed() {
		t.Errorf("TakeOverflowed() after a rejected push = false, want true")
	}
	if q.TakeOverflowed() {
		t.Errorf("second TakeOverflowed() = true, want false (flag already cleared)")
	}
}
