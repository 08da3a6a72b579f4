//go:build !linux && !darwin

package lfq

import "runtime"

// yieldOS falls back to the Go scheduler yield on platforms where
// golang.org/x/sys/unix does not apply (e.g. windows).
func yieldOS() {
	runtime.Gosched()
}
