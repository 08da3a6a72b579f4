package main

/*
#include "shim.h"
*/
import "C"

import (
	"unsafe"

	"github.com/gazed/servoview/coalesce"
)

func translateCInputEvent(ev *C.servoview_input_event) coalesce.InputEvent {
	return coalesce.InputEvent{
		Kind:         uint32(ev.kind),
		X:            float32(ev.x),
		Y:            float32(ev.y),
		Modifiers:    uint32(ev.modifiers),
		MouseButton:  uint32(ev.mouse_button),
		MouseAction:  uint32(ev.mouse_action),
		WheelDeltaX:  float64(ev.wheel_delta_x),
		WheelDeltaY:  float64(ev.wheel_delta_y),
		WheelDeltaZ:  float64(ev.wheel_delta_z),
		WheelMode:    uint32(ev.wheel_mode),
		KeyState:     uint32(ev.key_state),
		KeyLocation:  uint32(ev.key_location),
		Repeat:       uint32(ev.repeat),
		IsComposing:  uint32(ev.is_composing),
		KeyCodepoint: uint32(ev.key_codepoint),
		GLFWKey:      uint32(ev.glfw_key),
	}
}

// servoview_view_send_input_events sends a batch of input events to a
// view (§6 view_send_input_events). Returns the number of accepted
// events, which may be less than count if the bounded input queue
// fills. If the view is inactive, every event is treated as accepted
// and dropped (fast path), matching original_source's
// ffi/input.rs xian_web_engine_view_send_input_events exactly: mouse
// moves are coalesced (only the latest survives), and consecutive
// non-move events are pushed as one batch into the bounded queue so a
// mid-batch rejection stops at the first event that did not fit.
//
//export servoview_view_send_input_events
func servoview_view_send_input_events(viewPtr unsafe.Pointer, events *C.servoview_input_event, count C.uint32_t) C.uint32_t {
	v, ok := viewPointerValue(viewPtr)
	if !ok || events == nil || count == 0 {
		return 0
	}

	n := int(count)
	slice := unsafe.Slice(events, n)

	if !v.IsActive() {
		return count
	}

	var (
		accepted       uint32
		wakeNeeded     bool
		haveMouseMove  bool
		mouseX, mouseY float32
		inputPending   bool
	)

	i := 0
	for i < n {
		ev := slice[i]
		if uint32(ev.kind) == coalesce.InputKindMouseMove {
			mouseX, mouseY = float32(ev.x), float32(ev.y)
			haveMouseMove = true
			accepted++
			i++
			continue
		}

		start := i
		for i < n && uint32(slice[i].kind) != coalesce.InputKindMouseMove {
			i++
		}

		batch := make([]coalesce.InputEvent, 0, i-start)
		for j := start; j < i; j++ {
			ev := slice[j]
			batch = append(batch, translateCInputEvent(&ev))
		}
		pushed := v.PushInputEvents(batch)
		accepted += uint32(pushed)
		if pushed > 0 {
			inputPending = true
		}
		if pushed < len(batch) {
			break
		}
	}

	if haveMouseMove {
		if v.QueueMouseMove(mouseX, mouseY) {
			wakeNeeded = true
		}
	}
	if inputPending && v.NotifyInputPending() {
		wakeNeeded = true
	}
	if wakeNeeded {
		v.Wake()
	}

	return C.uint32_t(accepted)
}
