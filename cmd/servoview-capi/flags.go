package main

// View creation flags, matching the §6 "View creation flags" bitmask
// carried in view_flags. Grounded on original_source's
// src/engine/flags.rs bits 0 and 1; bit 2 is this module's addition for
// the UNSAFE_NO_PRODUCER_FENCE flag spec.md names in §6 but
// flags.rs never defined (rendercontext.Context already implements the
// behavior — see its unsafeNoProducerFence field).
const (
	viewFlagUnsafeNoConsumerFence uint32 = 1 << 0
	viewFlagInputSingleProducer   uint32 = 1 << 1
	viewFlagUnsafeNoProducerFence uint32 = 1 << 2
)
