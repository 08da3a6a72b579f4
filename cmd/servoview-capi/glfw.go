package main

/*
#include <stdlib.h>
#include "shim.h"
*/
import "C"

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gazed/servoview/glfwapi"
)

// installedGLFWTable holds a servoview_glfw_api copied by value out of the
// caller's memory at install time, so this package never holds a raw
// pointer into embedder-owned storage past the install call, mirroring
// original_source's "api is copied, then installed" shape in
// ffi/glfw.rs's xian_web_engine_set_glfw_api.
var installedGLFWTable C.servoview_glfw_api

// servoview_set_glfw_api installs the host-supplied 7-function GLFW
// table once per process (§6). Must be called before
// servoview_engine_create. Returns false if api is NULL, the table is
// incomplete, or a table has already been installed.
//
//export servoview_set_glfw_api
func servoview_set_glfw_api(api *C.servoview_glfw_api) C.bool {
	if api == nil {
		return C.bool(false)
	}
	if api.get_proc_address == nil || api.make_context_current == nil || api.default_window_hints == nil ||
		api.window_hint == nil || api.get_window_attrib == nil || api.create_window == nil || api.destroy_window == nil {
		return C.bool(false)
	}
	if _, ok := glfwapi.Get(); ok {
		return C.bool(false)
	}
	installedGLFWTable = *api

	table := glfwapi.Table{
		GetProcAddress: func(name string) uintptr {
			cname := C.CString(name)
			defer C.free(unsafe.Pointer(cname))
			return uintptr(C.servoview_call_get_proc_address(installedGLFWTable.get_proc_address, cname))
		},
		MakeContextCurrent: func(w glfwapi.Window) {
			C.servoview_call_make_context_current(installedGLFWTable.make_context_current, unsafe.Pointer(w))
		},
		DefaultWindowHints: func() {
			C.servoview_call_default_window_hints(installedGLFWTable.default_window_hints)
		},
		WindowHint: func(hint glfw.Hint, value int) {
			C.servoview_call_window_hint(installedGLFWTable.window_hint, C.int(hint), C.int(value))
		},
		GetWindowAttrib: func(w glfwapi.Window, attrib glfw.Hint) int {
			return int(C.servoview_call_get_window_attrib(installedGLFWTable.get_window_attrib, unsafe.Pointer(w), C.int(attrib)))
		},
		CreateWindow: func(width, height int, title string, monitor glfwapi.Monitor, share glfwapi.Window) glfwapi.Window {
			ctitle := C.CString(title)
			defer C.free(unsafe.Pointer(ctitle))
			w := C.servoview_call_create_window(installedGLFWTable.create_window, C.int(width), C.int(height), ctitle, unsafe.Pointer(monitor), unsafe.Pointer(share))
			return glfwapi.Window(w)
		},
		DestroyWindow: func(w glfwapi.Window) {
			C.servoview_call_destroy_window(installedGLFWTable.destroy_window, unsafe.Pointer(w))
		},
	}

	if err := glfwapi.Install(table); err != nil {
		return C.bool(false)
	}
	return C.bool(true)
}
