package coalesce

import "github.com/gazed/servoview/lfq"

// LoadURL is the latest-wins URL-load coalescer: Set always publishes the
// newest URL string, discarding any URL that hasn't been drained yet. It is
// built directly on lfq.CoalescedBox, the same latest-wins primitive the
// mouse-move/resize coalescers' packed-atomic approach stands in for when
// the payload isn't fixed-width.
type LoadURL struct {
	box lfq.CoalescedBox[string]
}

// Set stores url as the latest pending load request, discarding whatever
// URL was previously pending (the evicted node, if any, is recycled into
// the free cache). The view handle is responsible for separately marking
// PendingWork's LoadURL bit so the engine thread wakes to drain it.
func (l *LoadURL) Set(url string) {
	node := l.box.PopFree()
	if node == nil {
		node = new(string)
	}
	*node = url

	if old := l.box.Replace(node); old != nil {
		l.Recycle(old)
	}
}

// Take removes and returns the pending URL, or false if none is pending.
// The caller should call Recycle once it is done with the returned string
// to return the node to the free cache.
func (l *LoadURL) Take() (*string, bool) {
	node := l.box.Take()
	return node, node != nil
}

// Recycle returns a drained node to the free cache for reuse.
func (l *LoadURL) Recycle(node *string) {
	*node = ""
	l.box.PushFree(node)
}
