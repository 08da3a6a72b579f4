// Package refresh implements the two refresh drivers §4.6 describes: a
// fixed-interval scheduler shared by every fixed-fps view in one engine
// instance, and an external-vsync callback queue the host drains from its
// own vsync thread. Both exist to satisfy one Servo RefreshDriver call per
// view: observe_next_frame(callback).
package refresh

import (
	"container/heap"
	"sync/atomic"
	"time"

	"github.com/gazed/servoview/lfq"
)

// Callback is one refresh observation, invoked with no frame-state
// argument — it is the web engine's own closure that re-enters rendering
// once called.
type Callback func()

type scheduledTask struct {
	deadline time.Time
	seq      uint64
	callback Callback
}

// taskHeap is a min-heap ordered by deadline, with seq breaking ties so
// two tasks scheduled for the same instant still run in submission order.
type taskHeap []scheduledTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(scheduledTask)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// schedulerRingCapacity is the hot-path bounded ring size; bursts beyond
// this fall back to the unbounded overflow queue rather than blocking a
// caller of Schedule.
const schedulerRingCapacity = 8192

// Scheduler runs one worker goroutine that services every fixed-interval
// view in an engine instance, avoiding a per-view timer goroutine. It is
// created lazily by the engine on the first fixed-interval view.
type Scheduler struct {
	ring     *lfq.BoundedRing[scheduledTask]
	overflow *lfq.UnboundedMPSC[scheduledTask]
	parker   *lfq.Parker
	nextSeq  atomic.Uint64

	done chan struct{}
}

// NewScheduler starts the worker goroutine and returns a ready scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		ring:     lfq.NewBoundedRing[scheduledTask](schedulerRingCapacity),
		overflow: lfq.NewUnboundedMPSC[scheduledTask](),
		parker:   lfq.NewParker(),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Schedule runs callback once, after delay has elapsed. Safe to call from
// any number of goroutines.
func (s *Scheduler) Schedule(delay time.Duration, callback Callback) {
	task := scheduledTask{
		deadline: time.Now().Add(delay),
		seq:      s.nextSeq.Add(1),
		callback: callback,
	}
	if err := s.ring.TryPush(task); err != nil {
		s.overflow.Push(task)
	}
	s.parker.Unpark()
}

// Shutdown stops the worker goroutine. Safe to call once; a second call is
// a no-op.
func (s *Scheduler) Shutdown() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)
	s.parker.Unpark()
}

func (s *Scheduler) run() {
	var pending taskHeap
	for {
		s.drainInto(&pending)

		now := time.Now()
		for pending.Len() > 0 && !pending[0].deadline.After(now) {
			task := heap.Pop(&pending).(scheduledTask)
			task.callback()
		}

		select {
		case <-s.done:
			return
		default:
		}

		if pending.Len() == 0 {
			s.parker.Park()
			continue
		}
		s.parker.ParkTimeout(time.Until(pending[0].deadline))
	}
}

func (s *Scheduler) drainInto(pending *taskHeap) {
	for {
		task, ok := s.ring.Pop()
		if !ok {
			break
		}
		heap.Push(pending, task)
	}
	for {
		task, ok := s.overflow.Pop()
		if !ok {
			break
		}
		heap.Push(pending, task)
	}
}
