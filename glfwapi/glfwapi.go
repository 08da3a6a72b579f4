// Package glfwapi holds the host-supplied GLFW function table described in
// §6: seven entry points the host's own GLFW installation already
// resolved, handed to this module once per process so the engine thread
// can create a shared offscreen context without linking GLFW itself. It
// is grounded on original_source's glfw.rs dynamic loader (there a
// Windows-only DLL symbol lookup; here the host does that work and just
// hands over the resolved pointers), typed with go-gl/glfw's Hint /
// WindowHint constants rather than inventing parallel enums.
package glfwapi

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window and Monitor are opaque handles into the host's own GLFW windowing
// state; this module never dereferences them, only threads them back
// through the table.
type Window unsafe.Pointer
type Monitor unsafe.Pointer

// Table is the 7-function host-supplied GLFW API surface. Every field
// must be non-nil for Install to succeed.
type Table struct {
	GetProcAddress      func(name string) uintptr
	MakeContextCurrent  func(w Window)
	DefaultWindowHints  func()
	WindowHint          func(hint glfw.Hint, value int)
	GetWindowAttrib     func(w Window, attrib glfw.Hint) int
	CreateWindow        func(width, height int, title string, monitor Monitor, share Window) Window
	DestroyWindow       func(w Window)
}

// ErrAlreadyInstalled is returned by Install once a table has already been
// installed for this process.
var ErrAlreadyInstalled = errors.New("glfwapi: table already installed")

// ErrIncompleteTable is returned by Install if any of Table's 7 fields is
// nil.
var ErrIncompleteTable = errors.New("glfwapi: incomplete function table")

var installed Table
var isInstalled bool

// Install registers the host's GLFW function table. It is process-wide
// and install-once: a second call (even with an identical table) returns
// ErrAlreadyInstalled, matching the design note that global mutable state
// here "must tolerate repeated install attempts with an explicit
// already-installed error" and "must complete before any engine is
// created". Not safe to call concurrently with itself or with Get; the
// host is expected to install once during its own startup before
// constructing any engine.
func Install(t Table) error {
	if isInstalled {
		return ErrAlreadyInstalled
	}
	if t.GetProcAddress == nil || t.MakeContextCurrent == nil || t.DefaultWindowHints == nil ||
		t.WindowHint == nil || t.GetWindowAttrib == nil || t.CreateWindow == nil || t.DestroyWindow == nil {
		return ErrIncompleteTable
	}
	installed = t
	isInstalled = true
	return nil
}

// Get returns the installed table and whether one has been installed yet.
func Get() (Table, bool) {
	return installed, isInstalled
}
