package frame

// ResizeSlot is the per-slot callback invoked by Resize for every slot
// that needs its texture reallocated to newWidth×newHeight; the caller
// (rendercontext) owns the actual GL texture storage call.
type ResizeSlot func(slot int, newWidth, newHeight uint32)

// Resize is producer-only. It holds the consumer off by setting the
// resizing flag for its duration, unconditionally resizes the back slot
// (the producer always owns it), and CASes each other slot out of READY
// or FREE into RENDERING so it can be safely reallocated — slots
// currently HELD or RELEASE_PENDING are left alone this cycle and will
// pick up the new size on their next reclaim.
func (s *SharedState) Resize(newWidth, newHeight uint32, resizeSlot ResizeSlot) {
	s.meta.SetResizing(true)

	back := &s.slots[s.backSlot]
	back.SetSize(newWidth, newHeight)
	resizeSlot(s.backSlot, newWidth, newHeight)
	back.storeStateRelease(Rendering)

	for i := 0; i < TripleBufferCount; i++ {
		if i == s.backSlot {
			continue
		}
		sl := &s.slots[i]
		if sl.compareExchangeState(Ready, Rendering) || sl.compareExchangeState(Free, Rendering) {
			sl.ClearProducerFence()
			sl.ClearConsumerFence()
			sl.SetSize(newWidth, newHeight)
			resizeSlot(i, newWidth, newHeight)
			sl.storeStateRelease(Free)
		}
	}

	s.meta.SetResizing(false)
}
