package view

import (
	"runtime"
	"sync/atomic"

	"github.com/gazed/servoview/coalesce"
	"github.com/gazed/servoview/frame"
	"github.com/gazed/servoview/lfq"
)

// Init bundles everything the engine thread builds for a newly created
// view before handing a Handle back to the host through the CreateView
// one-shot. It is exported only so the engine package (which owns view
// creation) can assemble one; host code never constructs an Init.
type Init struct {
	ID                    uint32
	Token                 uint64
	Shared                *frame.SharedState
	MouseMove             *coalesce.MouseMove
	Resize                *coalesce.Resize
	InputQueue            *coalesce.InputEventQueue
	LoadURLBox            *coalesce.LoadURL
	Pending               *coalesce.PendingWork
	PendingQueue          *coalesce.PendingIDQueue
	CommandQueue          *CommandQueue
	EngineParker          *lfq.Parker
	UnsafeNoConsumerFence bool
}

// Handle is a thread-safe façade over one view's shared state (§4.7). Any
// number of host goroutines may call its methods concurrently; the
// engine thread never calls into a Handle directly — it only reads the
// same underlying state the Handle writes into.
type Handle struct {
	id    uint32
	token uint64

	shared       *frame.SharedState
	mouseMove    *coalesce.MouseMove
	resize       *coalesce.Resize
	inputQueue   *coalesce.InputEventQueue
	loadURLBox   *coalesce.LoadURL
	pending      *coalesce.PendingWork
	pendingQueue *coalesce.PendingIDQueue
	commandQueue *CommandQueue
	engineParker *lfq.Parker

	unsafeNoConsumerFence bool

	closed atomic.Bool
}

// New builds a Handle from an engine-assembled Init and arms a finalizer
// that posts DestroyView if the host never calls Close — standing in for
// the automatic Drop the original relies on to reclaim abandoned handles.
func New(init Init) *Handle {
	h := &Handle{
		id:                    init.ID,
		token:                 init.Token,
		shared:                init.Shared,
		mouseMove:             init.MouseMove,
		resize:                init.Resize,
		inputQueue:            init.InputQueue,
		loadURLBox:            init.LoadURLBox,
		pending:               init.Pending,
		pendingQueue:          init.PendingQueue,
		commandQueue:          init.CommandQueue,
		engineParker:          init.EngineParker,
		unsafeNoConsumerFence: init.UnsafeNoConsumerFence,
	}
	runtime.SetFinalizer(h, (*Handle).Close)
	return h
}

// ID returns the view's stable identifier.
func (h *Handle) ID() uint32 { return h.id }

func (h *Handle) markPending(bits uint8) bool {
	if !h.pending.Mark(bits) {
		return false
	}
	h.pendingQueue.Push(h.id)
	return true
}

// IsActive reports whether the view is currently marked active.
func (h *Handle) IsActive() bool {
	return h.shared.IsActive()
}

// QueueMouseMove coalesces a pointer-move event and marks it pending. The
// returned bool reports whether this call needs to wake the engine thread
// itself (via Wake) — false means a wake is already in flight.
func (h *Handle) QueueMouseMove(x, y float32) bool {
	h.mouseMove.Set(x, y)
	return h.markPending(coalesce.PendingMouseMove)
}

// QueueResize clamps size to at least 1x1, coalesces it, and marks it
// pending.
func (h *Handle) QueueResize(width, height uint32) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	h.resize.Set(width, height)
	return h.markPending(coalesce.PendingResize)
}

// PushInputEvents enqueues as many of events as fit into the bounded
// input ring, returning the count accepted.
func (h *Handle) PushInputEvents(events []coalesce.InputEvent) int {
	return h.inputQueue.TryPushSlice(events)
}

// NotifyInputPending marks the input queue pending (coalesced so a burst
// of pushes only signals the engine thread once) and marks the view's
// INPUT bit.
func (h *Handle) NotifyInputPending() bool {
	if !h.inputQueue.MarkPending() {
		return false
	}
	return h.markPending(coalesce.PendingInput)
}

// LoadURL sets the latest URL to navigate to (coalesced; latest call
// wins) and marks LOAD_URL pending.
func (h *Handle) LoadURL(url string) bool {
	h.loadURLBox.Set(url)
	return h.markPending(coalesce.PendingLoadURL)
}

// SetActive marks the view active/inactive. It is a no-op (returning
// false) if the requested state already matches.
func (h *Handle) SetActive(active bool) bool {
	if h.shared.IsActive() == active {
		return false
	}
	h.shared.SetActive(active)
	return h.markPending(coalesce.PendingActive)
}

// AcquireFrame attempts to acquire the freshest READY frame for sampling.
func (h *Handle) AcquireFrame() (frame.AcquiredFrame, bool) {
	return h.shared.TryAcquireFront()
}

// ReleaseSlotWithFence releases slot back to the triple buffer. If the
// view was created with UnsafeNoConsumerFence, consumerFence is ignored
// and treated as already-signaled (0).
func (h *Handle) ReleaseSlotWithFence(slot int, consumerFence uint64) {
	if slot < 0 || slot >= frame.TripleBufferCount {
		return
	}
	if h.unsafeNoConsumerFence {
		h.shared.ReleaseSlot(slot, 0)
	} else {
		h.shared.ReleaseSlot(slot, consumerFence)
	}
}

// Wake unparks the engine thread unconditionally. Callers who cannot be
// sure another wake is already in flight (for example after a call whose
// "wake needed" return was false but who want to be certain) may use this.
func (h *Handle) Wake() {
	h.engineParker.Unpark()
}

// Close posts DestroyView for this view and wakes the engine thread so it
// can act on it, standing in for the automatic destructor the original
// relies on. Close is idempotent; calling it more than once (or letting
// the finalizer call it after an explicit Close) is a no-op.
func (h *Handle) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	runtime.SetFinalizer(h, nil)
	h.commandQueue.Push(Command{
		Kind:         DestroyViewCmd,
		DestroyID:    h.id,
		DestroyToken: h.token,
	})
	h.engineParker.Unpark()
}
