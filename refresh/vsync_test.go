package refresh

import "testing"

func TestVsyncCallbackQueueTicksQueuedCallbacks(t *testing.T) {
	q := NewVsyncCallbackQueue()

	var ran []int
	for i := 0; i < 10; i++ {
		i := i
		q.Enqueue(func() { ran = append(ran, i) })
	}

	q.Tick()

	if len(ran) != 10 {
		t.Fatalf("len(ran) = %d, want 10", len(ran))
	}
	for i, v := range ran {
		if v != i {
			t.Errorf("ran[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestVsyncCallbackQueueDefersCallbacksEnqueuedDuringTick(t *testing.T) {
	q := NewVsyncCallbackQueue()

	var firstTickRan, deferredRan bool
	q.Enqueue(func() {
		firstTickRan = true
		q.Enqueue(func() { deferredRan = true })
	})

	q.Tick()
	if !firstTickRan {
		t.Fatal("first callback did not run on first Tick")
	}
	if deferredRan {
		t.Fatal("callback enqueued during Tick ran within the same Tick")
	}

	q.Tick()
	if !deferredRan {
		t.Fatal("deferred callback did not run on second Tick")
	}
}

func TestVsyncCallbackQueueOverflowsPastRingCapacity(t *testing.T) {
	q := NewVsyncCallbackQueue()

	count := vsyncRingCapacity*2 + 5
	ran := 0
	for i := 0; i < count; i++ {
		q.Enqueue(func() { ran++ })
	}

	q.Tick()
	if ran != count {
		t.Errorf("ran = %d, want %d", ran, count)
	}
}

func TestVsyncCallbackQueueEmptyTickIsNoop(t *testing.T) {
	q := NewVsyncCallbackQueue()
	q.Tick() // must not panic on an empty queue
}

func TestVsyncCallbackQueueOverflowDrainsFIFO(t *testing.T) {
	q := NewVsyncCallbackQueue()

	// Fill the ring first so every subsequent Enqueue lands on the
	// Treiber-stack overflow path (push order is LIFO; drain must
	// still observe them oldest-first, per §4.6).
	for i := 0; i < vsyncRingCapacity; i++ {
		q.Enqueue(func() {})
	}

	const overflowCount = 10
	var ran []int
	for i := 0; i < overflowCount; i++ {
		i := i
		q.Enqueue(func() { ran = append(ran, i) })
	}
	if q.overflow.Load() == nil {
		t.Fatal("setup bug: expected callbacks to land on the overflow stack")
	}

	q.Tick()

	if len(ran) != overflowCount {
		t.Fatalf("len(ran) = %d, want %d", len(ran), overflowCount)
	}
	for i, v := range ran {
		if v != i {
			t.Errorf("overflow callback order[%d] = %d, want %d (FIFO)", i, v, i)
		}
	}
}
