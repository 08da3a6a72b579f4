package frame

import "testing"

func TestResize_BackSlotAlwaysResized(t *testing.T) {
	s := NewSharedState(200, 150)
	s.Slot(1).storeStateRelease(Held) // skip this cycle

	var resized []int
	s.Resize(400, 300, func(slot int, w, h uint32) {
		resized = append(resized, slot)
		if w != 400 || h != 300 {
			t.Errorf("resizeSlot(%d) got (%d,%d), want (400,300)", slot, w, h)
		}
	})

	if w, h := s.Slot(0).Size(); w != 400 || h != 300 {
		t.Errorf("back slot size = (%d,%d), want (400,300)", w, h)
	}
	if got := s.Slot(0).State(); got != Rendering {
		t.Errorf("back slot state after resize = %v, want RENDERING", got)
	}
	if got := s.Slot(1).State(); got != Held {
		t.Errorf("HELD slot state after resize = %v, want HELD (skipped)", got)
	}
	if w, h := s.Slot(1).Size(); w == 400 && h == 300 {
		t.Errorf("HELD slot was resized but should have been skipped")
	}
	if got := s.Slot(2).State(); got != Free {
		t.Errorf("resized FREE slot final state = %v, want FREE", got)
	}

	found := false
	for _, i := range resized {
		if i == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("resizeSlot was not called for slot 2, resized = %v", resized)
	}
	if s.IsResizing() {
		t.Errorf("IsResizing() after Resize returns = true, want false")
	}
}
