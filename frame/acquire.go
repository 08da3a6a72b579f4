package frame

// TryAcquireFront attempts to claim the latest READY slot for the
// consumer. It is consumer-only.
//
// The hint from latestPacked is tried first (Acquire read); on CAS
// failure (a producer raced the slot to RENDERING in the meantime) the
// other two slots are inspected and, if both are READY, the one with the
// larger frameSeq is preferred — the freshest frame wins for the
// consumer. This is the opposite preference direction from the
// producer's reclaim steal (see reclaim.go), intentionally: the consumer
// wants the newest data, the producer wants to sacrifice the stalest.
func (s *SharedState) TryAcquireFront() (AcquiredFrame, bool) {
	if s.meta.IsResizing() {
		return AcquiredFrame{}, false
	}

	packed := s.meta.latestPacked.Load()
	if packed == 0 {
		return AcquiredFrame{}, false
	}
	_, hint := unpackLatest(packed)

	if s.slots[hint].compareExchangeState(Ready, Held) {
		return s.acquiredSnapshot(hint), true
	}

	other := make([]int, 0, TripleBufferCount-1)
	for i := 0; i < TripleBufferCount; i++ {
		if i != hint {
			other = append(other, i)
		}
	}
	a, b := other[0], other[1]

	aReady := s.slots[a].stateRelaxed() == Ready
	bReady := s.slots[b].stateRelaxed() == Ready
	if aReady && bReady {
		if s.slots[a].FrameSeq() < s.slots[b].FrameSeq() {
			a, b = b, a
		}
	}

	if aReady && s.slots[a].compareExchangeState(Ready, Held) {
		return s.acquiredSnapshot(a), true
	}
	if bReady && s.slots[b].compareExchangeState(Ready, Held) {
		return s.acquiredSnapshot(b), true
	}
	return AcquiredFrame{}, false
}

func (s *SharedState) acquiredSnapshot(slot int) AcquiredFrame {
	sl := &s.slots[slot]
	w, h := sl.Size()
	return AcquiredFrame{
		Slot:          uint32(slot),
		TextureID:     sl.TextureID(),
		ProducerFence: sl.ProducerFence(),
		Width:         w,
		Height:        h,
	}
}
