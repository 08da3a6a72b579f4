package frame

// Publish stores a newly rendered frame into slot and makes it the latest
// front for the consumer. It is producer-only and never fails: the back
// slot is always owned by the producer.
//
// Ordering: frameSeq and producerFence are stored relaxed (their values
// only need to be visible once the state transition below is observed);
// the state transition to READY uses release, and the latestPacked store
// right after it also uses release — pinning producerFence's visibility
// to the state's release edge rather than giving it its own, per the
// open-question decision recorded in DESIGN.md.
func (s *SharedState) Publish(slot int, producerFence uint64, newFrameSeq uint64) {
	sl := &s.slots[slot]
	sl.frameSeq.Store(newFrameSeq)
	sl.producerFence.Store(producerFence)
	sl.storeStateRelease(Ready)
	s.meta.latestPacked.Store(packLatest(newFrameSeq, slot))
}

// NextFrameSeq allocates the next monotonic frame sequence number for this
// view, skipping zero (reserved for "never published") on wraparound.
func (s *SharedState) NextFrameSeq() uint64 {
	s.nextSeq++
	if s.nextSeq == 0 {
		s.nextSeq = 1
	}
	return s.nextSeq
}
