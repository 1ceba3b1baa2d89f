package observer

import (
	"testing"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
)

// manualScheduler queues flushes and runs them on demand, standing in for
// the animation-frame boundary.
type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) Schedule(flush func()) {
	s.pending = append(s.pending, flush)
}

func (s *manualScheduler) Tick() {
	flushes := s.pending
	s.pending = nil
	for _, f := range flushes {
		f()
	}
}

// box is a mutable test target.
type box struct {
	rect engine.Rect
}

func (b *box) BoundingRect() engine.Rect { return b.rect }

func TestCoalescesChangesWithinTick(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b := &box{rect: engine.Rect{Width: 10, Height: 10}}

	var calls int
	var last Entry
	obs.Observe(b, func(e Entry) {
		calls++
		last = e
	})
	sched.Tick() // initial notification
	calls = 0

	// A resize and two moves within the same tick.
	b.rect.Width = 50
	obs.NotifyChanged(b)
	b.rect.X = 5
	obs.NotifyChanged(b)
	b.rect.X = 9
	obs.NotifyChanged(b)

	sched.Tick()

	if calls != 1 {
		t.Fatalf("callback fired %d times in one tick, want 1", calls)
	}
	if last.ContentRect.Width != 50 || last.ContentRect.X != 9 {
		t.Errorf("callback did not carry the final rect: %+v", last.ContentRect)
	}
}

func TestInitialNotification(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b := &box{rect: engine.Rect{Width: 30, Height: 40}}

	var got *Entry
	obs.Observe(b, func(e Entry) { got = &e })
	sched.Tick()

	if got == nil {
		t.Fatal("no initial notification")
	}
	if got.ContentRect.Width != 30 {
		t.Errorf("initial rect: %+v", got.ContentRect)
	}
}

func TestMultipleCallbacksPerTarget(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b := &box{}

	var a, c int
	subA := obs.Observe(b, func(Entry) { a++ })
	obs.Observe(b, func(Entry) { c++ })
	sched.Tick()

	if a != 1 || c != 1 {
		t.Fatalf("initial delivery: a=%d c=%d", a, c)
	}

	subA.Cancel()
	obs.NotifyChanged(b)
	sched.Tick()

	if a != 1 {
		t.Errorf("cancelled callback still fired")
	}
	if c != 2 {
		t.Errorf("remaining callback fired %d times, want 2", c)
	}
}

func TestLastCancelReleasesTarget(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b := &box{}

	sub := obs.Observe(b, func(Entry) {})
	if !obs.Observed(b) {
		t.Fatal("target not tracked after Observe")
	}

	sub.Cancel()
	sub.Cancel() // double-cancel is a no-op
	if obs.Observed(b) {
		t.Errorf("target still tracked after last cancel")
	}

	// Notifications for an untracked target are dropped silently.
	obs.NotifyChanged(b)
	sched.Tick()
}

func TestIndependentTargets(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b1, b2 := &box{}, &box{}

	var n1, n2 int
	obs.Observe(b1, func(Entry) { n1++ })
	obs.Observe(b2, func(Entry) { n2++ })
	sched.Tick()
	n1, n2 = 0, 0

	obs.NotifyChanged(b1)
	sched.Tick()

	if n1 != 1 || n2 != 0 {
		t.Errorf("delivery leaked across targets: n1=%d n2=%d", n1, n2)
	}
}

func TestMeasureSource(t *testing.T) {
	sched := &manualScheduler{}
	obs := NewRectObserver(sched)
	b := &box{rect: engine.Rect{Width: 77}}

	var got engine.Rect
	cancel := MeasureSource{Observer: obs, Target: b}.Subscribe(func(r engine.Rect) { got = r })
	sched.Tick()

	if got.Width != 77 {
		t.Errorf("measured rect: %+v", got)
	}

	cancel()
	if obs.Observed(b) {
		t.Errorf("measure source did not release the target")
	}
}
