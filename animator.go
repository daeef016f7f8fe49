package sway

import (
	"context"
	"sync"
	"time"
)

// stepper is one live animation task. step advances it by dt seconds and
// reports true when the task is finished and should be removed.
type stepper interface {
	step(dt float64) bool
}

// Animator owns every registry the animation system needs: the in-flight
// stepper list, the per-object last-tween record, named and per-property
// springs, resumable-tween ownership tokens, and sequence-proxy state.
// Construct one per running system with NewAnimator.
//
// The animator does not own a clock. The host calls Step once per frame
// (or uses Run for a ticker-driven loop); all "background" animation work
// advances inside Step. Public methods may be called from any goroutine
// while another drives Step; a synchronous call (waitToKill) blocks its
// caller until Step has driven the animation to its end, so it must not be
// made from the goroutine that drives Step.
type Animator struct {
	// Debug selects hard-fail error reporting: invalid requests panic
	// instead of warning on stderr. Set it before issuing animations.
	Debug bool

	mu         sync.Mutex
	steppers   []stepper
	lastTween  map[Object]*Tween
	named      map[string]*Spring
	objSprings map[Object]map[string]*Spring
	owners     map[Object]map[string]uint64
	nextGen    uint64
	seqs       map[Object]map[string]*seqState
}

// NewAnimator creates an animator with empty registries.
func NewAnimator() *Animator {
	return &Animator{
		lastTween:  make(map[Object]*Tween),
		named:      make(map[string]*Spring),
		objSprings: make(map[Object]map[string]*Spring),
		owners:     make(map[Object]map[string]uint64),
		seqs:       make(map[Object]map[string]*seqState),
	}
}

func (a *Animator) addStepper(s stepper) {
	a.mu.Lock()
	a.steppers = append(a.steppers, s)
	a.mu.Unlock()
}

// Step advances every live animation by dt seconds. Steppers run
// sequentially, so at most one writer touches a given (object, property)
// per tick. Steppers added during a Step (by completion callbacks or
// chained requests) start on the next tick.
func (a *Animator) Step(dt float64) {
	a.mu.Lock()
	snapshot := make([]stepper, len(a.steppers))
	copy(snapshot, a.steppers)
	a.mu.Unlock()

	var finished map[stepper]bool
	for _, s := range snapshot {
		if s.step(dt) {
			if finished == nil {
				finished = make(map[stepper]bool, 4)
			}
			finished[s] = true
		}
	}
	if finished == nil {
		return
	}

	a.mu.Lock()
	kept := a.steppers[:0]
	for _, s := range a.steppers {
		if !finished[s] {
			kept = append(kept, s)
		}
	}
	a.steppers = kept
	a.mu.Unlock()
}

// Run drives Step from a ticker until ctx is cancelled, for hosts without
// a frame loop of their own. tps is ticks per second; values below 1 fall
// back to 60.
func (a *Animator) Run(ctx context.Context, tps int) {
	if tps < 1 {
		tps = 60
	}
	dt := 1.0 / float64(tps)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Step(dt)
		}
	}
}

// timerStepper runs a callback once the given animation time has elapsed.
type timerStepper struct {
	left float64
	fn   func()
}

func (t *timerStepper) step(dt float64) bool {
	t.left -= dt
	if t.left > 0 {
		return false
	}
	if t.fn != nil {
		t.fn()
	}
	return true
}

// after schedules fn to run once d seconds of animation time have elapsed.
func (a *Animator) after(d float64, fn func()) {
	a.addStepper(&timerStepper{left: d, fn: fn})
}

// sleep blocks the calling goroutine for d seconds of animation time.
// Used by synchronous entry points to preserve the nominal duration for
// sequential callers even when a request is invalid.
func (a *Animator) sleep(d float64) {
	if d <= 0 {
		return
	}
	ch := make(chan struct{})
	a.after(d, func() { close(ch) })
	<-ch
}
