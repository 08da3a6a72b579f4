package refresh

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedIntervalCoalescesObservations(t *testing.T) {
	s := NewScheduler()
	defer s.Shutdown()

	fi := NewFixedInterval(s, 60)

	var cb1Ran, cb2Ran atomic.Bool
	fi.ObserveNextFrame(func() { cb1Ran.Store(true) })
	fi.ObserveNextFrame(func() { cb2Ran.Store(true) })

	deadline := time.Now().Add(time.Second)
	for !cb1Ran.Load() && !cb2Ran.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if cb1Ran.Load() == cb2Ran.Load() {
		t.Fatalf("expected exactly one of cb1/cb2 to run, got cb1=%v cb2=%v", cb1Ran.Load(), cb2Ran.Load())
	}
}

func TestFixedIntervalReArmsFromWithinCallback(t *testing.T) {
	s := NewScheduler()
	defer s.Shutdown()

	fi := NewFixedInterval(s, 200)

	var count atomic.Int32
	done := make(chan struct{})
	var tick func()
	tick = func() {
		n := count.Add(1)
		if n < 3 {
			fi.ObserveNextFrame(tick)
		} else {
			close(done)
		}
	}
	fi.ObserveNextFrame(tick)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("re-armed callback chain never completed")
	}
	if count.Load() != 3 {
		t.Errorf("count = %d, want 3", count.Load())
	}
}
