package main

/*
#include "shim.h"
*/
import "C"

import (
	"unsafe"

	"github.com/gazed/servoview/engine"
	"github.com/gazed/servoview/glfwapi"
)

// cstrToString converts an optional NUL-terminated UTF-8 C string to a
// Go string, treating NULL and empty as "unset" — matching
// original_source's cstr_to_path helper in ffi/mod.rs.
func cstrToString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// servoview_engine_create creates an engine bound to a host-created GLFW
// OpenGL context (§6 engine_create). resources_dir and config_dir are
// optional NUL-terminated UTF-8 strings; NULL or empty means unset.
// thread_pool_cap of 0 means no cap. Returns NULL on failure (no GLFW
// table installed yet, or the engine thread failed to initialize within
// its deadline).
//
//export servoview_engine_create
func servoview_engine_create(glfwSharedWindow unsafe.Pointer, defaultWidth, defaultHeight C.uint32_t, resourcesDir, configDir *C.char, threadPoolCap C.uint32_t) unsafe.Pointer {
	if glfwSharedWindow == nil {
		return nil
	}
	table, ok := glfwapi.Get()
	if !ok {
		return nil
	}

	attrs := []engine.Attr{
		engine.DefaultSize(uint32(defaultWidth), uint32(defaultHeight)),
		engine.ResourcesDir(cstrToString(resourcesDir)),
		engine.ConfigDir(cstrToString(configDir)),
		engine.ThreadPoolCap(int(threadPoolCap)),
	}

	e, err := engine.New(table, glfwapi.Window(glfwSharedWindow), glContextFactory, webEngineFactory, attrs...)
	if err != nil {
		return nil
	}
	return newEnginePointer(e)
}

// servoview_engine_destroy shuts down the dedicated engine thread and
// destroys every remaining view/resource the engine owns. Do not use
// any view created from engine after calling this.
//
//export servoview_engine_destroy
func servoview_engine_destroy(enginePtr unsafe.Pointer) {
	e, ok := enginePointerValue(enginePtr)
	if !ok {
		return
	}
	e.Shutdown()
	deleteEnginePointer(enginePtr)
}

// servoview_engine_tick drains pending external-vsync callbacks (§6
// engine_tick), typically called from the host's own vsync thread.
//
//export servoview_engine_tick
func servoview_engine_tick(enginePtr unsafe.Pointer) {
	e, ok := enginePointerValue(enginePtr)
	if !ok {
		return
	}
	e.Tick()
}
