package sway

import (
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

func isDisposed(o Object) bool {
	d, ok := o.(Disposable)
	return ok && d.IsDisposed()
}

// Tween is the native keyframe interpolation handle: it plays a batch of
// property interpolations on one object over a fixed timeline and fires a
// one-shot completion signal with the terminal state. Handles are created
// by the dispatcher; the most recent one per object is retrievable with
// Animator.LastTween.
//
// The timeline is a 0→1 gween tween mapped through the configured easing;
// delay, repeats, and reverse plays are handled as successive cycles.
type Tween struct {
	a       *Animator
	object  Object
	info    TweenInfo
	fn      ease.TweenFunc
	targets map[string]Value
	starts  map[string]Value

	mu         sync.Mutex
	timeline   *gween.Tween
	delayLeft  float64
	cyclesLeft int
	infinite   bool
	reversing  bool
	playing    bool
	finished   bool

	completed *signal
}

func newTween(a *Animator, object Object, info TweenInfo, properties map[string]Value) *Tween {
	targets := make(map[string]Value, len(properties))
	for name, v := range properties {
		targets[name] = v
	}
	return &Tween{
		a:         a,
		object:    object,
		info:      info,
		fn:        easeFunc(info.Style, info.Direction),
		targets:   targets,
		completed: &signal{},
	}
}

// Object returns the tween's target object.
func (t *Tween) Object() Object { return t.object }

// Info returns the tween's timing configuration.
func (t *Tween) Info() TweenInfo { return t.info }

// Completed registers a callback for the tween's terminal state. If the
// tween already finished, the callback runs immediately.
func (t *Tween) Completed(fn func(PlaybackState)) {
	t.completed.connect(fn)
}

// Play captures the start value of every targeted property and begins
// advancing the timeline on the animator's ticks. Nil target values,
// properties the object does not have, and targets whose kind differs
// from the property's current kind are reported and dropped from the
// batch. A zero-duration tween applies its targets immediately and
// completes synchronously.
func (t *Tween) Play() {
	t.mu.Lock()
	if t.playing || t.finished {
		t.mu.Unlock()
		return
	}
	t.playing = true

	t.starts = make(map[string]Value, len(t.targets))
	for name, tgt := range t.targets {
		if tgt == nil {
			t.a.warnf("tween: nil target value for property %q", name)
			delete(t.targets, name)
			continue
		}
		cur, ok := t.object.Property(name)
		if !ok {
			t.a.warnf("tween: object %v has no property %q", t.object, name)
			delete(t.targets, name)
			continue
		}
		if cur.Kind() != tgt.Kind() {
			t.a.warnf("tween: property %q is %v, target is %v", name, cur.Kind(), tgt.Kind())
			delete(t.targets, name)
			continue
		}
		t.starts[name] = cur
	}

	if t.info.Duration <= 0 {
		t.mu.Unlock()
		t.finish(PlaybackCompleted)
		return
	}

	t.delayLeft = t.info.DelayTime
	t.cyclesLeft = t.info.RepeatCount
	t.infinite = t.info.RepeatCount < 0
	t.timeline = gween.New(0, 1, float32(t.info.Duration), t.fn)
	t.mu.Unlock()

	t.a.addStepper(t)
}

// Destroy cancels the tween. It stops writing on the next tick and fires
// the completion signal with PlaybackCancelled unless the tween already
// reached a terminal state.
func (t *Tween) Destroy() {
	t.finish(PlaybackCancelled)
}

func (t *Tween) step(dt float64) bool {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return true
	}
	if isDisposed(t.object) {
		t.mu.Unlock()
		t.finish(PlaybackCancelled)
		return true
	}
	if t.delayLeft > 0 {
		t.delayLeft -= dt
		if t.delayLeft >= 0 {
			t.mu.Unlock()
			return false
		}
		// Spend the part of this tick that outlived the delay.
		dt = -t.delayLeft
		t.delayLeft = 0
	}

	frac, done := t.timeline.Update(float32(dt))
	ended := false
	if done {
		switch {
		case t.info.Reverses && !t.reversing:
			t.reversing = true
			t.timeline = gween.New(1, 0, float32(t.info.Duration), t.fn)
		case t.infinite || t.cyclesLeft > 0:
			if !t.infinite {
				t.cyclesLeft--
			}
			t.reversing = false
			t.timeline = gween.New(0, 1, float32(t.info.Duration), t.fn)
		default:
			ended = true
		}
	}
	t.mu.Unlock()

	t.apply(float64(frac))
	if ended {
		t.finish(PlaybackCompleted)
		return true
	}
	return false
}

func (t *Tween) apply(frac float64) {
	for name, tgt := range t.targets {
		if v, ok := lerpValue(t.starts[name], tgt, frac); ok {
			t.object.SetProperty(name, v)
		}
	}
}

// finish records the terminal state once. A completed tween snaps every
// property to its exact end value so downstream readers never observe a
// float-accumulated approximation.
func (t *Tween) finish(state PlaybackState) {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	t.finished = true
	reversed := t.info.Reverses
	t.mu.Unlock()

	if state == PlaybackCompleted && !isDisposed(t.object) {
		for name, tgt := range t.targets {
			end := tgt
			if reversed {
				end = t.starts[name]
			}
			if end != nil {
				t.object.SetProperty(name, end)
			}
		}
	}
	t.completed.fire(state)
}

// waitDone blocks until the tween reaches a terminal state.
func (t *Tween) waitDone() {
	ch := make(chan struct{})
	t.completed.connect(func(PlaybackState) { close(ch) })
	<-ch
}
