package main

/*
#include "shim.h"
*/
import "C"

import (
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/gazed/servoview/view"
)

// createViewTimeout bounds how long servoview_view_create waits for the
// engine thread to build a view and hand back a handle. original_source
// leaves this to EngineRuntime::create_view's internal channel recv,
// which has no caller-visible timeout parameter in the C ABI either; this
// module picks a generous fixed bound rather than adding a parameter §6
// does not name.
const createViewTimeout = 5 * time.Second

// servoview_view_create creates one view (§6 view_create). target_fps =
// 0 means the view is driven by external vsync (servoview_engine_tick).
// Returns NULL if engine is NULL or the engine thread failed to build
// the view within its deadline.
//
//export servoview_view_create
func servoview_view_create(enginePtr unsafe.Pointer, width, height, targetFPS C.uint32_t, viewFlags C.uint32_t) unsafe.Pointer {
	e, ok := enginePointerValue(enginePtr)
	if !ok {
		return nil
	}

	flags := uint32(viewFlags)
	params := view.CreateViewParams{
		InitialWidth:          uint32(width),
		InitialHeight:         uint32(height),
		TargetFPS:             float64(uint32(targetFPS)),
		SingleProducerInput:   flags&viewFlagInputSingleProducer != 0,
		UnsafeNoConsumerFence: flags&viewFlagUnsafeNoConsumerFence != 0,
		UnsafeNoProducerFence: flags&viewFlagUnsafeNoProducerFence != 0,
	}

	handle, err := e.CreateView(params, createViewTimeout)
	if err != nil {
		return nil
	}
	return newViewPointer(handle)
}

// servoview_view_destroy destroys a view created by
// servoview_view_create. The caller must ensure there are no
// outstanding acquired frames and must not sample its textures after
// this call.
//
//export servoview_view_destroy
func servoview_view_destroy(viewPtr unsafe.Pointer) {
	v, ok := viewPointerValue(viewPtr)
	if !ok {
		return
	}
	v.Close()
	deleteViewPointer(viewPtr)
}

// servoview_view_set_active sets whether a view is active; active views
// render and accept input.
//
//export servoview_view_set_active
func servoview_view_set_active(viewPtr unsafe.Pointer, active C.uint8_t) {
	v, ok := viewPointerValue(viewPtr)
	if !ok {
		return
	}
	if v.SetActive(active != 0) {
		v.Wake()
	}
}

// servoview_view_resize requests a resize in pixels. Coalesced: only
// the latest size survives until the engine thread drains it.
//
//export servoview_view_resize
func servoview_view_resize(viewPtr unsafe.Pointer, width, height C.uint32_t) {
	v, ok := viewPointerValue(viewPtr)
	if !ok {
		return
	}
	if v.QueueResize(uint32(width), uint32(height)) {
		v.Wake()
	}
}

// servoview_view_load_url requests navigation to url, a NUL-terminated
// UTF-8 string. Returns false only if view or url is NULL or the
// string is not valid UTF-8; URL parsing itself happens on the engine
// thread and its failure is not surfaced here (§7).
//
//export servoview_view_load_url
func servoview_view_load_url(viewPtr unsafe.Pointer, url *C.char) C.bool {
	v, ok := viewPointerValue(viewPtr)
	if !ok || url == nil {
		return C.bool(false)
	}
	s := C.GoString(url)
	if !utf8.ValidString(s) {
		return C.bool(false)
	}
	if v.LoadURL(s) {
		v.Wake()
	}
	return C.bool(true)
}
