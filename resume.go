package sway

import "github.com/tanema/gween/ease"

// TweenFromAlpha reproduces a time-keyed interpolation that starts partway
// through its timeline: the native primitive cannot be told to begin at an
// arbitrary completion fraction, so this engine drives the interpolation
// itself, one tick at a time, over the remaining duration.
//
// alpha is the completion fraction in [0, 1) to resume from. The eased
// value at alpha is applied instantaneously (through a zero-duration
// native tween, so it composes with any playing tween instead of causing a
// visual discontinuity), then the loop interpolates from each property's
// current value toward its target over duration × (1 - alpha).
//
// Ownership per (object, property) is a generation id: issuing a newer
// resumable interpolation (or a plain tween) on the same property installs
// a newer id, and this loop stops writing that property on its next tick.
// No explicit cancellation exists; supersession is the only mechanism. A
// fully superseded loop exits without resolving its chain.
//
// The returned chain resolves when the loop finishes naturally. With
// waitToKill set, the call additionally blocks until then (an invalid
// request still waits out the remaining nominal duration).
func (a *Animator) TweenFromAlpha(object Object, timing any, properties map[string]Value, alpha float64, waitToKill bool) *Chain {
	info, err := parseTiming(timing)
	if err != nil {
		a.warnf("tweenFromAlpha: %v", err)
		return emptyChain(a)
	}
	remaining := info.Duration * (1 - clamp01(alpha))
	if alpha < 0 || alpha >= 1 {
		a.warnf("tweenFromAlpha: alpha must be in [0, 1), got %v", alpha)
		if waitToKill {
			a.sleep(remaining)
		}
		return emptyChain(a)
	}
	if object == nil || isDisposed(object) {
		a.warnf("tweenFromAlpha: invalid target object")
		if waitToKill {
			a.sleep(remaining)
		}
		return emptyChain(a)
	}

	fn := easeFunc(info.Style, info.Direction)

	starts := make(map[string]Value, len(properties))
	targets := make(map[string]Value, len(properties))
	for name, tgt := range properties {
		cur, ok := object.Property(name)
		if !ok {
			a.warnf("tweenFromAlpha: object %v has no property %q", object, name)
			continue
		}
		if tgt == nil || cur.Kind() != tgt.Kind() {
			a.warnf("tweenFromAlpha: property %q is %v, target is %s", name, cur.Kind(), kindOf(tgt))
			continue
		}
		starts[name] = cur
		targets[name] = tgt
	}
	if len(starts) == 0 {
		if waitToKill {
			a.sleep(remaining)
		}
		return emptyChain(a)
	}

	// Install this loop as the controller of every targeted property.
	a.mu.Lock()
	a.nextGen++
	gen := a.nextGen
	owned := a.owners[object]
	if owned == nil {
		owned = make(map[string]uint64, len(starts))
		a.owners[object] = owned
	}
	for name := range starts {
		owned[name] = gen
	}
	a.mu.Unlock()

	// Jump to the eased start fraction instantaneously.
	initial := make(map[string]Value, len(starts))
	eased := evalEase(fn, alpha)
	for name, start := range starts {
		if v, ok := lerpValue(start, targets[name], eased); ok {
			initial[name] = v
		}
	}
	jump := newTween(a, object, TweenInfo{Style: info.Style, Direction: info.Direction}, initial)
	jump.Play()

	loop := &resumeLoop{
		a:         a,
		object:    object,
		gen:       gen,
		alpha:     alpha,
		remaining: remaining,
		fn:        fn,
		starts:    starts,
		targets:   targets,
		chain:     loopChain(a),
		done:      make(chan struct{}),
	}
	a.addStepper(loop)

	if waitToKill {
		<-loop.done
	}
	return loop.chain
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// resumeLoop is one resumable interpolation: it owns the properties whose
// generation entry still matches its id and writes them each tick until
// the timeline ends or every property has been taken over.
type resumeLoop struct {
	a         *Animator
	object    Object
	gen       uint64
	alpha     float64
	remaining float64
	elapsed   float64
	fn        ease.TweenFunc
	starts    map[string]Value
	targets   map[string]Value
	chain     *Chain
	done      chan struct{}
}

func (l *resumeLoop) step(dt float64) bool {
	if isDisposed(l.object) {
		l.releaseOwnership()
		close(l.done)
		return true
	}

	l.elapsed += dt
	frac := 1.0
	if l.remaining > 0 && l.elapsed < l.remaining {
		frac = l.elapsed / l.remaining
	}
	global := l.alpha + frac*(1-l.alpha)
	eased := evalEase(l.fn, global)

	l.a.mu.Lock()
	owned := make([]string, 0, len(l.starts))
	if om := l.a.owners[l.object]; om != nil {
		for name := range l.starts {
			if om[name] == l.gen {
				owned = append(owned, name)
			}
		}
	}
	l.a.mu.Unlock()

	if len(owned) == 0 {
		// Fully superseded: exit without further writes; the chain stays
		// unresolved, like an interrupted tween.
		l.releaseOwnership()
		close(l.done)
		return true
	}

	finishing := frac >= 1
	for _, name := range owned {
		if finishing {
			l.object.SetProperty(name, l.targets[name])
			continue
		}
		if v, ok := lerpValue(l.starts[name], l.targets[name], eased); ok {
			l.object.SetProperty(name, v)
		}
	}
	if !finishing {
		return false
	}

	l.releaseOwnership()
	l.chain.resolve()
	close(l.done)
	return true
}

// releaseOwnership clears this loop's entries from the ownership map and
// drops the object's map entirely once no property references any id.
func (l *resumeLoop) releaseOwnership() {
	l.a.mu.Lock()
	if om := l.a.owners[l.object]; om != nil {
		for name := range l.starts {
			if om[name] == l.gen {
				delete(om, name)
			}
		}
		if len(om) == 0 {
			delete(l.a.owners, l.object)
		}
	}
	l.a.mu.Unlock()
}
