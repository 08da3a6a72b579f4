package main

/*
#include "shim.h"
*/
import "C"

import "unsafe"

// servoview_views_acquire_frames tries to acquire the latest READY frame
// for a batch of views (§6 views_acquire_frames). It writes densely:
// only successfully acquired frames are written, packed into
// outViewIndices/outFrames from 0..returned count. Both output arrays
// must have capacity for at least count entries.
//
//export servoview_views_acquire_frames
func servoview_views_acquire_frames(views *unsafe.Pointer, outViewIndices *C.uint32_t, outFrames *C.servoview_acquired_frame, count C.uint32_t) C.uint32_t {
	if views == nil || outViewIndices == nil || outFrames == nil || count == 0 {
		return 0
	}

	n := int(count)
	viewPtrs := unsafe.Slice(views, n)
	indicesOut := unsafe.Slice(outViewIndices, n)
	framesOut := unsafe.Slice(outFrames, n)

	var acquired int
	for i, p := range viewPtrs {
		v, ok := viewPointerValue(p)
		if !ok {
			continue
		}
		frame, ok := v.AcquireFrame()
		if !ok {
			continue
		}
		indicesOut[acquired] = C.uint32_t(i)
		framesOut[acquired] = C.servoview_acquired_frame{
			slot:           C.uint32_t(frame.Slot),
			texture_id:     C.uint32_t(frame.TextureID),
			producer_fence: C.uint64_t(frame.ProducerFence),
			width:          C.uint32_t(frame.Width),
			height:         C.uint32_t(frame.Height),
		}
		acquired++
	}
	return C.uint32_t(acquired)
}

// servoview_views_release_frames releases a batch of previously acquired
// frame slots (§6 views_release_frames). consumerFences may be NULL, in
// which case every fence is treated as 0. A view created with
// UNSAFE_NO_CONSUMER_FENCE ignores whatever fence is passed for it (see
// view.Handle.ReleaseSlotWithFence).
//
//export servoview_views_release_frames
func servoview_views_release_frames(views *unsafe.Pointer, slots *C.uint32_t, consumerFences *C.uint64_t, count C.uint32_t) {
	if views == nil || slots == nil || count == 0 {
		return
	}

	n := int(count)
	viewPtrs := unsafe.Slice(views, n)
	slotValues := unsafe.Slice(slots, n)

	var fenceValues []C.uint64_t
	if consumerFences != nil {
		fenceValues = unsafe.Slice(consumerFences, n)
	}

	for i, p := range viewPtrs {
		v, ok := viewPointerValue(p)
		if !ok {
			continue
		}
		var fence uint64
		if fenceValues != nil {
			fence = uint64(fenceValues[i])
		}
		v.ReleaseSlotWithFence(int(slotValues[i]), fence)
	}
}
