package frame

// ReleaseSlot returns a HELD slot to the producer, optionally carrying a
// GPU consumer fence the producer must wait on before reusing it. It is
// consumer-only and best-effort idempotent: a stale slot index or a slot
// that isn't currently HELD is silently ignored.
//
// Without a fence, the state CAS to FREE happens first and the consumer
// fence is cleared afterward — state is authoritative, not the fence
// field: a producer racing a reclaim in that narrow window can see FREE
// with the old fence value still stored, and clears it itself when it
// takes the slot (prepareReclaimedSlot; see DESIGN.md).
func (s *SharedState) ReleaseSlot(slot int, consumerFence uint64) {
	if slot < 0 || slot >= TripleBufferCount {
		return
	}
	sl := &s.slots[slot]

	if consumerFence == 0 {
		if sl.compareExchangeState(Held, Free) {
			sl.ClearConsumerFence()
		}
		return
	}

	if sl.stateRelaxed() != Held {
		return
	}
	sl.consumerFence.Store(consumerFence)
	sl.compareExchangeState(Held, ReleasePending)
}
