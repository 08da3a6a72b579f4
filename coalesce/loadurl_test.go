package coalesce

import "testing"

func TestLoadURLSetTakeCoalescesAndRecycles(t *testing.T) {
	var l LoadURL

	if _, ok := l.Take(); ok {
		t.Fatalf("Take() on empty coalescer = ok, want not ok")
	}

	l.Set("https://example.com/a")
	l.Set("https://example.com/b") // second write must win, first gets recycled

	got, ok := l.Take()
	if !ok || *got != "https://example.com/b" {
		t.Errorf("Take() = (%q,%v), want (\"https://example.com/b\",true)", derefOrEmpty(got), ok)
	}
	l.Recycle(got)

	if _, ok := l.Take(); ok {
		t.Errorf("Take() after drain = ok, want not ok")
	}

	// The recycled node should be reused rather than a fresh allocation.
	node := l.box.PopFree()
	if node == nil {
		t.Fatalf("PopFree() after Recycle = nil, want a cached node")
	}
	if *node != "" {
		t.Errorf("recycled node value = %q, want cleared to empty string", *node)
	}
	l.box.PushFree(node)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
