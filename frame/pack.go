package frame

// PackLatest bit-packs a (frameSeq, slot) pair the same way Publish does,
// exported for tests and diagnostics.
func PackLatest(frameSeq uint64, slot int) uint64 { return packLatest(frameSeq, slot) }

// UnpackLatest is the inverse of PackLatest.
func UnpackLatest(packed uint64) (frameSeq uint64, slot int) { return unpackLatest(packed) }
