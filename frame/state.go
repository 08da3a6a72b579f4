// Package frame implements the lock-free triple-buffered frame exchange
// between exactly one producer (the engine thread, which owns the GL
// rendering context) and exactly one consumer (the host, which samples
// textures). It is grounded on the shared-state atomic protocol the
// original implementation's frame/shared_state module describes.
package frame

import "sync/atomic"

// TripleBufferCount is the fixed number of slots held per view.
const TripleBufferCount = 3

// SlotState is the state machine value for one Slot.
type SlotState uint32

const (
	Free SlotState = iota
	Ready
	Held
	ReleasePending
	Rendering
)

func (s SlotState) String() string {
	switch s {
	case Free:
		return "FREE"
	case Ready:
		return "READY"
	case Held:
		return "HELD"
	case ReleasePending:
		return "RELEASE_PENDING"
	case Rendering:
		return "RENDERING"
	default:
		return "UNKNOWN"
	}
}

// Slot holds one GPU texture's coordination atomics. Each Slot is padded to
// its own cache line so producer and consumer writes to neighbouring slots
// never false-share.
type Slot struct {
	state atomic.Uint32
	_     [60]byte

	textureID atomic.Uint32
	_         [60]byte

	producerFence atomic.Uint64
	_             [56]byte

	consumerFence atomic.Uint64
	_             [56]byte

	frameSeq atomic.Uint64
	_        [56]byte

	width  atomic.Uint32
	height atomic.Uint32
	_      [56]byte
}

func (s *Slot) stateRelaxed() SlotState   { return SlotState(s.state.Load()) }
func (s *Slot) storeStateRelease(v SlotState) { s.state.Store(uint32(v)) }

func (s *Slot) compareExchangeState(old, new SlotState) bool {
	return s.state.CompareAndSwap(uint32(old), uint32(new))
}

// TextureID returns the slot's currently allocated GL texture name.
func (s *Slot) TextureID() uint32 { return s.textureID.Load() }

// SetTextureID stores the slot's GL texture name; producer-only.
func (s *Slot) SetTextureID(id uint32) { s.textureID.Store(id) }

// Size returns the slot's current (width, height).
func (s *Slot) Size() (uint32, uint32) { return s.width.Load(), s.height.Load() }

// SetSize stores the slot's current size; producer-only.
func (s *Slot) SetSize(w, h uint32) {
	s.width.Store(w)
	s.height.Store(h)
}

// FrameSeq returns the slot's last published frame sequence number.
func (s *Slot) FrameSeq() uint64 { return s.frameSeq.Load() }

// State returns the slot's current state.
func (s *Slot) State() SlotState { return SlotState(s.state.Load()) }

// ProducerFence returns the slot's stored producer fence (0 if none).
func (s *Slot) ProducerFence() uint64 { return s.producerFence.Load() }

// ClearProducerFence clears the stored producer fence.
func (s *Slot) ClearProducerFence() { s.producerFence.Store(0) }

// ConsumerFence returns the slot's stored consumer fence (0 if none).
func (s *Slot) ConsumerFence() uint64 { return s.consumerFence.Load() }

// ClearConsumerFence clears the stored consumer fence.
func (s *Slot) ClearConsumerFence() { s.consumerFence.Store(0) }

// Meta is the per-view frame metadata: which slot/seq is newest, and the
// resizing/active flags. Each field lives on its own cache line.
type Meta struct {
	latestPacked atomic.Uint64
	_            [56]byte

	resizing atomic.Uint32
	_        [60]byte

	active atomic.Uint32
	_      [60]byte
}

// slotIndexBits is the number of low bits of latestPacked reserved for the
// slot index; TripleBufferCount (3) fits in 2 bits.
const slotIndexBits = 2
const slotIndexMask = (1 << slotIndexBits) - 1

func packLatest(frameSeq uint64, slot int) uint64 {
	return (frameSeq << slotIndexBits) | (uint64(slot) & slotIndexMask)
}

func unpackLatest(packed uint64) (frameSeq uint64, slot int) {
	return packed >> slotIndexBits, int(packed & slotIndexMask)
}

// IsResizing reports whether the consumer must not acquire right now.
func (m *Meta) IsResizing() bool { return m.resizing.Load() != 0 }

// SetResizing sets or clears the resizing flag.
func (m *Meta) SetResizing(v bool) {
	if v {
		m.resizing.Store(1)
	} else {
		m.resizing.Store(0)
	}
}

// IsActive reports whether the view renders and accepts input.
func (m *Meta) IsActive() bool { return m.active.Load() != 0 }

// SetActive sets or clears the active flag.
func (m *Meta) SetActive(v bool) {
	if v {
		m.active.Store(1)
	} else {
		m.active.Store(0)
	}
}

// AcquiredFrame is the POD snapshot handed back to the consumer.
type AcquiredFrame struct {
	Slot          uint32
	TextureID     uint32
	ProducerFence uint64
	Width         uint32
	Height        uint32
}

// SharedState is the full per-view shared frame state: three slots plus
// metadata, plus the producer's monotonic sequence counter and back-slot
// bookkeeping. Exactly one goroutine must act as producer and one as
// consumer; neither may be called reentrantly from more than one goroutine.
type SharedState struct {
	slots [TripleBufferCount]Slot
	meta  Meta

	nextSeq      uint64 // producer-only, no atomics needed
	backSlot     int    // producer-only
	reservedNext int    // producer-only; -1 if nothing preflight-reserved
}

// NewSharedState creates per-view frame state with slot 0 forced to
// RENDERING (seeding the producer's back slot) and the rest FREE, each
// allocated at width×height.
func NewSharedState(width, height uint32) *SharedState {
	s := &SharedState{reservedNext: -1}
	for i := range s.slots {
		s.slots[i].SetSize(width, height)
		s.slots[i].storeStateRelease(Free)
	}
	s.slots[0].storeStateRelease(Rendering)
	s.backSlot = 0
	return s
}

// IsActive reports the view's active flag.
func (s *SharedState) IsActive() bool { return s.meta.IsActive() }

// SetActive sets the view's active flag.
func (s *SharedState) SetActive(v bool) { s.meta.SetActive(v) }

// IsResizing reports the view's resizing flag.
func (s *SharedState) IsResizing() bool { return s.meta.IsResizing() }

// BackSlot returns the index of the slot the producer is currently
// rendering into.
func (s *SharedState) BackSlot() int { return s.backSlot }

// Slot returns the Slot at index i, for callers (rendercontext) that need
// direct access to its texture/size fields.
func (s *SharedState) Slot(i int) *Slot { return &s.slots[i] }
