//go:build linux || darwin

package lfq

import "golang.org/x/sys/unix"

// yieldOS yields to the OS scheduler directly, for platforms where
// runtime.Gosched alone doesn't hand off to another OS thread quickly
// enough under oversubscription.
func yieldOS() {
	_ = unix.Sched_yield()
}
