package lifecycle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchedulerFiresInOrder(t *testing.T) {
	s := NewScheduler()
	var got []int
	s.Request(func() { got = append(got, 1) })
	s.Request(func() { got = append(got, 2) })

	if n := s.Fire(); n != 2 {
		t.Errorf("Fire ran %d callbacks, want 2", n)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if n := s.Fire(); n != 0 {
		t.Errorf("second Fire ran %d callbacks, want 0", n)
	}
}

func TestSchedulerRequestDuringFire(t *testing.T) {
	s := NewScheduler()
	runs := 0
	var tick func()
	tick = func() {
		runs++
		s.Request(tick)
	}
	s.Request(tick)

	for i := 0; i < 3; i++ {
		if n := s.Fire(); n != 1 {
			t.Fatalf("fire %d ran %d callbacks, want 1", i, n)
		}
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.Request(func() { ran = true })

	if !s.Cancel(id) {
		t.Error("Cancel of a pending request should report true")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	if n := s.Fire(); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}
}

func TestSchedulerCancelDuringFire(t *testing.T) {
	s := NewScheduler()
	secondRan := false
	var second FrameID
	s.Request(func() { s.Cancel(second) })
	second = s.Request(func() { secondRan = true })

	if n := s.Fire(); n != 1 {
		t.Errorf("Fire ran %d callbacks, want 1", n)
	}
	if secondRan {
		t.Error("callback cancelled mid-fire should not run")
	}
}
