package lfq

import "testing"

func TestCoalescedBox_LatestWins(t *testing.T) {
	var c CoalescedBox[int]

	if c.IsPending() {
		t.Errorf("IsPending() on empty box = true, want false")
	}

	a, b := 1, 2
	if old := c.Replace(&a); old != nil {
		t.Errorf("Replace() first call returned %v, want nil", old)
	}
	if !c.IsPending() {
		t.Errorf("IsPending() after Replace = false, want true")
	}
	if old := c.Replace(&b); old != &a {
		t.Errorf("Replace() second call returned %v, want &a", old)
	}

	got := c.Take()
	if got != &b {
		t.Errorf("Take() = %v, want &b", got)
	}
	if c.Take() != nil {
		t.Errorf("Take() on drained box returned non-nil")
	}
}

func TestCoalescedBox_FreeCache(t *testing.T) {
	var c CoalescedBox[int]
	if c.PopFree() != nil {
		t.Errorf("PopFree() on empty cache returned non-nil")
	}

	n := new(int)
	c.PushFree(n)
	if got := c.PopFree(); got != n {
		t.Errorf("PopFree() = %v, want %v", got, n)
	}
	if c.PopFree() != nil {
		t.Errorf("PopFree() after drain returned non-nil")
	}
}
