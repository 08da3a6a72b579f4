package main

import (
	"runtime/cgo"
	"unsafe"

	"github.com/gazed/servoview/engine"
	"github.com/gazed/servoview/view"
)

// Opaque C pointers never dereference a real Go pointer: each one is a
// runtime/cgo.Handle — the stdlib's sanctioned way to hand a Go value
// across the cgo boundary as an opaque, GC-safe token — encoded as a
// uintptr-sized "pointer" value. XianWebEngine/XianWebEngineView in
// original_source's ffi/mod.rs are real boxed Rust structs behind a raw
// pointer; cgo.Handle is this module's equivalent for a runtime with a
// moving, tracked garbage collector.

func newEnginePointer(e *engine.Engine) unsafe.Pointer {
	return unsafe.Pointer(uintptr(cgo.NewHandle(e)))
}

func enginePointerValue(p unsafe.Pointer) (*engine.Engine, bool) {
	if p == nil {
		return nil, false
	}
	h := cgo.Handle(uintptr(p))
	e, ok := h.Value().(*engine.Engine)
	return e, ok
}

func deleteEnginePointer(p unsafe.Pointer) {
	if p == nil {
		return
	}
	cgo.Handle(uintptr(p)).Delete()
}

func newViewPointer(v *view.Handle) unsafe.Pointer {
	return unsafe.Pointer(uintptr(cgo.NewHandle(v)))
}

func viewPointerValue(p unsafe.Pointer) (*view.Handle, bool) {
	if p == nil {
		return nil, false
	}
	h := cgo.Handle(uintptr(p))
	v, ok := h.Value().(*view.Handle)
	return v, ok
}

func deleteViewPointer(p unsafe.Pointer) {
	if p == nil {
		return
	}
	cgo.Handle(uintptr(p)).Delete()
}
