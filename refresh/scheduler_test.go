package refresh

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunsCallbackAfterDelay(t *testing.T) {
	s := NewScheduler()
	defer s.Shutdown()

	var fired atomic.Bool
	s.Schedule(5*time.Millisecond, func() { fired.Store(true) })

	deadline := time.Now().Add(time.Second)
	for !fired.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !fired.Load() {
		t.Fatal("scheduled callback did not run within 1s")
	}
}

func TestSchedulerOrdersByDeadline(t *testing.T) {
	s := NewScheduler()
	defer s.Shutdown()

	var mu, order = make(chan struct{}, 3), make([]int, 0, 3)
	record := func(n int) func() {
		return func() {
			order = append(order, n)
			mu <- struct{}{}
		}
	}

	s.Schedule(30*time.Millisecond, record(3))
	s.Schedule(10*time.Millisecond, record(1))
	s.Schedule(20*time.Millisecond, record(2))

	for i := 0; i < 3; i++ {
		select {
		case <-mu:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for scheduled callbacks")
		}
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestSchedulerShutdownStopsWorker(t *testing.T) {
	s := NewScheduler()
	s.Shutdown()
	s.Shutdown() // idempotent

	var fired atomic.Bool
	s.Schedule(time.Millisecond, func() { fired.Store(true) })
	time.Sleep(20 * time.Millisecond)
	if fired.Load() {
		t.Error("callback ran after scheduler shutdown")
	}
}
