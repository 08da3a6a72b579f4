package view

import (
	"testing"

	"github.com/gazed/servoview/coalesce"
	"github.com/gazed/servoview/frame"
	"github.com/gazed/servoview/lfq"
)

func newTestHandle(t *testing.T, unsafeNoConsumerFence bool) (*Handle, *CommandQueue, *lfq.Parker) {
	t.Helper()
	cq := NewCommandQueue()
	parker := lfq.NewParker()
	h := New(Init{
		ID:                    7,
		Token:                 42,
		Shared:                frame.NewSharedState(800, 600),
		MouseMove:             &coalesce.MouseMove{},
		Resize:                &coalesce.Resize{},
		InputQueue:            coalesce.NewInputEventQueue(false, 0),
		LoadURLBox:            &coalesce.LoadURL{},
		Pending:               &coalesce.PendingWork{},
		PendingQueue:          coalesce.NewPendingIDQueue(64),
		CommandQueue:          cq,
		EngineParker:          parker,
		UnsafeNoConsumerFence: unsafeNoConsumerFence,
	})
	return h, cq, parker
}

func TestHandleQueueMouseMoveMarksPendingOnce(t *testing.T) {
	h, _, _ := newTestHandle(t, false)

	if first := h.QueueMouseMove(1, 2); !first {
		t.Errorf("QueueMouseMove() first call = %v, want true", first)
	}
	if first := h.QueueMouseMove(3, 4); first {
		t.Errorf("QueueMouseMove() second call before drain = %v, want false", first)
	}

	id, ok := h.pendingQueue.Pop()
	if !ok || id != h.id {
		t.Fatalf("pendingQueue.Pop() = (%d,%v), want (%d,true)", id, ok, h.id)
	}
}

func TestHandleQueueResizeClampsToMinimumOne(t *testing.T) {
	h, _, _ := newTestHandle(t, false)

	h.QueueResize(0, 0)
	w, hh, ok := h.resize.Take()
	if !ok || w != 1 || hh != 1 {
		t.Errorf("resize after QueueResize(0,0) = (%d,%d,%v), want (1,1,true)", w, hh, ok)
	}
}

func TestHandleSetActiveNoOpWhenUnchanged(t *testing.T) {
	h, _, _ := newTestHandle(t, false)

	if h.IsActive() {
		t.Fatalf("new view IsActive() = true, want false")
	}
	if changed := h.SetActive(false); changed {
		t.Errorf("SetActive(false) on an already-inactive view = %v, want false (no-op)", changed)
	}
	if changed := h.SetActive(true); !changed {
		t.Errorf("SetActive(true) = %v, want true", changed)
	}
	if !h.IsActive() {
		t.Errorf("IsActive() after SetActive(true) = false, want true")
	}
}

func TestHandleLoadURLMarksPending(t *testing.T) {
	h, _, _ := newTestHandle(t, false)

	if first := h.LoadURL("https://example.com"); !first {
		t.Errorf("LoadURL() first call = %v, want true", first)
	}
	bits := h.pending.Take()
	if bits != coalesce.PendingLoadURL {
		t.Errorf("pending bits after LoadURL() = %#x, want %#x", bits, coalesce.PendingLoadURL)
	}
}

func TestHandleNotifyInputPendingCoalesces(t *testing.T) {
	h, _, _ := newTestHandle(t, false)

	h.PushInputEvents([]coalesce.InputEvent{{Kind: coalesce.InputKindKey}})
	if first := h.NotifyInputPending(); !first {
		t.Errorf("NotifyInputPending() first call = %v, want true", first)
	}
	if first := h.NotifyInputPending(); first {
		t.Errorf("NotifyInputPending() while already pending = %v, want false", first)
	}
}

func TestHandleReleaseSlotWithFenceRespectsUnsafeFlag(t *testing.T) {
	h, _, _ := newTestHandle(t, true)

	h.shared.Publish(0, 0xFEED, 1)
	if _, ok := h.AcquireFrame(); !ok {
		t.Fatalf("AcquireFrame() after Publish = not ok")
	}
	// Must not panic or block regardless of the supplied fence value; the
	// unsafe-no-consumer-fence view ignores it and treats the slot as
	// immediately reclaimable.
	h.ReleaseSlotWithFence(0, 0xDEAD)
	if got := h.shared.Slot(0).State(); got != frame.Free {
		t.Errorf("slot 0 state after release = %v, want FREE (fence ignored)", got)
	}
	if got := h.shared.Slot(0).ConsumerFence(); got != 0 {
		t.Errorf("slot 0 consumer fence = %#x, want 0 (fence ignored)", got)
	}
}

func TestHandleReleaseSlotWithFenceIgnoresOutOfRange(t *testing.T) {
	h, _, _ := newTestHandle(t, false)
	h.ReleaseSlotWithFence(-1, 0)
	h.ReleaseSlotWithFence(frame.TripleBufferCount, 0)
}

func TestHandleCloseIsIdempotentAndPostsDestroy(t *testing.T) {
	h, cq, parker := newTestHandle(t, false)

	h.Close()
	h.Close() // must not push a second DestroyView or panic

	cmd, ok := cq.Pop()
	if !ok {
		t.Fatalf("CommandQueue empty after Close(), want one DestroyView command")
	}
	if cmd.Kind != DestroyViewCmd || cmd.DestroyID != h.id || cmd.DestroyToken != h.token {
		t.Errorf("Close() command = %+v, want DestroyView{id:%d,token:%d}", cmd, h.id, h.token)
	}
	if _, ok := cq.Pop(); ok {
		t.Errorf("CommandQueue has a second command after idempotent Close(), want none")
	}

	if !parker.ParkTimeout(0) {
		t.Errorf("parker has no pending wakeup after Close(), want one from the unpark")
	}
}
