// Package observer fuses every "this element's visual rectangle changed"
// signal (resize, reflow, scroll, visibility, move) into one callback per
// observed target, coalesced per animation-frame tick.
package observer

import (
	"sync"

	"github.com/folkcanvas/folk/backend-go/internal/engine"
)

// Target is anything whose visual rectangle can be measured. The rect is
// read at flush time, so a callback always carries the final value for the
// tick regardless of how many changes preceded it.
type Target interface {
	BoundingRect() engine.Rect
}

// Entry describes one target's last known rectangle.
type Entry struct {
	Target      Target
	ContentRect engine.Rect
}

// Callback receives coalesced rect-change notifications.
type Callback func(Entry)

// Scheduler defers a flush to the next animation-frame-equivalent tick.
// Production code hooks this to a frame callback; tests flush manually.
// Schedule is called at most once per pending flush.
type Scheduler interface {
	Schedule(flush func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(flush func())

func (f SchedulerFunc) Schedule(flush func()) { f(flush) }

// Subscription ties one callback to one target. Cancelling twice is a no-op.
type Subscription struct {
	obs    *RectObserver
	target Target
	cb     Callback
	done   bool
}

// Cancel stops the subscription's notifications. When the last subscription
// for a target is cancelled, the observer releases all bookkeeping for that
// target.
func (s *Subscription) Cancel() {
	if s == nil || s.done {
		return
	}
	s.done = true
	s.obs.remove(s)
}

// RectObserver is an explicit, constructible dependency. There is no
// package-level instance; independent observers coexist freely.
type RectObserver struct {
	mu        sync.Mutex
	scheduler Scheduler
	targets   map[Target][]*Subscription
	pending   map[Target]struct{}
	scheduled bool
}

// NewRectObserver creates an observer that coalesces notifications on the
// given scheduler's ticks.
func NewRectObserver(scheduler Scheduler) *RectObserver {
	return &RectObserver{
		scheduler: scheduler,
		targets:   make(map[Target][]*Subscription),
		pending:   make(map[Target]struct{}),
	}
}

// Observe begins reporting rect changes for the target. The callback fires
// at most once per tick per target, with the rect measured at flush time.
// An immediate initial notification is queued so new consumers learn the
// current rect without waiting for a change.
func (o *RectObserver) Observe(target Target, cb Callback) *Subscription {
	sub := &Subscription{obs: o, target: target, cb: cb}

	o.mu.Lock()
	o.targets[target] = append(o.targets[target], sub)
	o.mu.Unlock()

	o.NotifyChanged(target)
	return sub
}

// Unobserve cancels the subscription; equivalent to sub.Cancel.
func (o *RectObserver) Unobserve(sub *Subscription) {
	sub.Cancel()
}

// Observed reports whether any subscription exists for the target.
func (o *RectObserver) Observed(target Target) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.targets[target]) > 0
}

// NotifyChanged marks the target dirty. Any number of change sources may
// call this within one tick; the target's callbacks still fire exactly once
// at the next flush.
func (o *RectObserver) NotifyChanged(target Target) {
	o.mu.Lock()
	if _, ok := o.targets[target]; !ok {
		o.mu.Unlock()
		return
	}
	o.pending[target] = struct{}{}
	needSchedule := !o.scheduled
	o.scheduled = true
	o.mu.Unlock()

	if needSchedule {
		o.scheduler.Schedule(o.flush)
	}
}

// flush delivers one callback per dirty target with its current rect.
func (o *RectObserver) flush() {
	o.mu.Lock()
	dirty := o.pending
	o.pending = make(map[Target]struct{})
	o.scheduled = false

	type delivery struct {
		cb    Callback
		entry Entry
	}
	var deliveries []delivery
	for target := range dirty {
		subs := o.targets[target]
		if len(subs) == 0 {
			continue
		}
		entry := Entry{Target: target, ContentRect: target.BoundingRect()}
		for _, sub := range subs {
			deliveries = append(deliveries, delivery{cb: sub.cb, entry: entry})
		}
	}
	o.mu.Unlock()

	// Callbacks run outside the lock; they may observe/unobserve freely.
	for _, d := range deliveries {
		d.cb(d.entry)
	}
}

func (o *RectObserver) remove(sub *Subscription) {
	o.mu.Lock()
	defer o.mu.Unlock()

	subs := o.targets[sub.target]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		// Last callback gone: release all resources for the target.
		delete(o.targets, sub.target)
		delete(o.pending, sub.target)
	} else {
		o.targets[sub.target] = subs
	}
}

// MeasureSource adapts a target's subscriptions to the content-measurement
// contract used by auto-sized shapes: subscribe with a plain rect callback,
// cancel with the returned func.
type MeasureSource struct {
	Observer *RectObserver
	Target   Target
}

// Subscribe starts content-rect notifications for the source's target.
func (m MeasureSource) Subscribe(fn func(engine.Rect)) func() {
	sub := m.Observer.Observe(m.Target, func(e Entry) {
		fn(e.ContentRect)
	})
	return sub.Cancel
}
