// Package tlsprovider holds the single process-wide TLS configuration
// installer used by the embedded web engine for its network stack. §6
// treats this the same way as glfwapi: a value the host supplies once,
// before any engine exists, rather than something this module
// constructs itself.
package tlsprovider

import (
	"crypto/tls"
	"errors"
)

// Builder produces a fresh *tls.Config on demand. The web engine may call
// it more than once (for example once per network thread), so it must be
// safe to call concurrently and should not hand out a shared mutable
// *tls.Config.
type Builder func() *tls.Config

// ErrAlreadyInstalled is returned by Install once a builder has already
// been installed for this process.
var ErrAlreadyInstalled = errors.New("tlsprovider: builder already installed")

// ErrNilBuilder is returned by Install when called with a nil Builder.
var ErrNilBuilder = errors.New("tlsprovider: nil builder")

var installed Builder
var isInstalled bool

// Install registers the host's TLS config builder. Install-once: a
// second call returns ErrAlreadyInstalled. Must complete before any
// engine that needs network access is created; not safe to call
// concurrently with itself or with Config.
func Install(b Builder) error {
	if isInstalled {
		return ErrAlreadyInstalled
	}
	if b == nil {
		return ErrNilBuilder
	}
	installed = b
	isInstalled = true
	return nil
}

// Config returns a fresh *tls.Config from the installed builder, or nil
// and false if nothing has been installed yet.
func Config() (*tls.Config, bool) {
	if !isInstalled {
		return nil, false
	}
	return installed(), true
}
