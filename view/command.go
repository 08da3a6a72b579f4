// Package view implements the thread-safe per-view handle (§4.7): the
// façade a host thread calls into to move a view, load a URL, push
// input, and acquire/release rendered frames, plus the command queue the
// engine thread drains to create and destroy views.
package view

import "github.com/gazed/servoview/lfq"

// CommandKind tags a Command's payload, matching the three variants the
// engine-thread loop understands in Phase A of its four-phase loop.
type CommandKind int

const (
	CreateViewCmd CommandKind = iota
	DestroyViewCmd
	ShutdownCmd
)

// CreateViewParams carries the parameters needed to build a new view's
// shared state, rendering context, and webview.
type CreateViewParams struct {
	InitialWidth, InitialHeight uint32
	TargetFPS                   float64 // 0 means external-vsync refresh
	SingleProducerInput         bool
	UnsafeNoConsumerFence       bool
	UnsafeNoProducerFence       bool
	InitialURL                  string
}

// CreateViewResult is what the one-shot carries back to the caller once
// the engine thread has built the view: the allocated view's Handle. The
// engine thread always replies with a Handle and leaves Err nil; a
// CreateView request that gets no reply ends in a timeout instead.
type CreateViewResult struct {
	Handle *Handle
	Err    error
}

// Command is one engine-thread instruction, matching §4.5 Phase A's
// CreateView / DestroyView / Shutdown set. DestroyView's token disambiguates
// stale destroy requests from an ID that has since been reused.
type Command struct {
	Kind CommandKind

	CreateParams   CreateViewParams
	CreateResponse *lfq.OneShot[CreateViewResult]

	DestroyID    uint32
	DestroyToken uint64
}

// CommandQueue is the engine-wide lock-free queue of Commands, built
// directly on the Vyukov unbounded MPSC primitive so view creation and
// destruction never blocks a host thread behind a full ring.
type CommandQueue struct {
	q *lfq.UnboundedMPSC[Command]
}

// NewCommandQueue creates an empty command queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{q: lfq.NewUnboundedMPSC[Command]()}
}

// Push enqueues cmd. Safe to call from any number of goroutines.
func (c *CommandQueue) Push(cmd Command) {
	c.q.Push(cmd)
}

// Pop removes and returns the oldest queued command. Engine-thread only.
func (c *CommandQueue) Pop() (Command, bool) {
	return c.q.Pop()
}
