package sway

// Tween animates a batch of properties on one object over the given
// timing. The timing argument accepts nil (defaults), a TweenInfo, or a
// loosely-keyed map (see parseTiming for the recognized keys).
//
// The batch is partitioned by property: a "Pivot" target on a rigid group
// animates through a transient proxy, sequence-valued targets go through
// the keypoint-proxy protocol, and everything else plays as one native
// tween. The native tween is recorded as the object's last tween (see
// LastTween) and always wins over any in-flight resumable interpolation on
// the same object.
//
// With waitToKill set the call blocks until the native tween completes
// (the animator must be stepped from another goroutine); otherwise a
// background watcher destroys the handle on completion and clears the
// last-tween record if it is still the most recent one. The synchronous
// wait covers the native and sequence buckets only; a pivot-only batch
// returns immediately and its completion is observed through the returned
// chain. An invalid target object is reported and degrades to an empty
// chain, but a synchronous caller still waits out the nominal duration so
// sequential timing is preserved.
func (a *Animator) Tween(object Object, timing any, properties map[string]Value, waitToKill bool) *Chain {
	info, err := parseTiming(timing)
	if err != nil {
		a.warnf("tween: %v", err)
		return emptyChain(a)
	}
	if object == nil || isDisposed(object) {
		a.warnf("tween: invalid target object")
		if waitToKill {
			a.sleep(info.total())
		}
		return emptyChain(a)
	}

	native := make(map[string]Value, len(properties))
	var sequences []string
	var aux *Chain
	for name, v := range properties {
		switch {
		case name == "Pivot":
			if c := a.pivotTween(object, info, v); c != nil {
				aux = c
			}
		case v != nil && (v.Kind() == KindNumberSequence || v.Kind() == KindColorSequence):
			sequences = append(sequences, name)
		default:
			native[name] = v
		}
	}
	// The synchronous wait belongs to the native batch when there is one;
	// otherwise the (last) sequence tween honors it on its final keypoint.
	for _, name := range sequences {
		if c := a.sequenceTween(object, info, name, properties[name], waitToKill && len(native) == 0); c != nil {
			aux = c
		}
	}

	if len(native) == 0 {
		if aux != nil {
			return aux
		}
		return emptyChain(a)
	}

	t := newTween(a, object, info, native)

	a.mu.Lock()
	a.lastTween[object] = t
	// A plain tween always wins over a stale resumable engine.
	delete(a.owners, object)
	a.mu.Unlock()

	c := tweenChain(a, t)
	t.Completed(func(PlaybackState) {
		t.Destroy()
		a.mu.Lock()
		// A stale completion must not clobber a newer record.
		if a.lastTween[object] == t {
			delete(a.lastTween, object)
		}
		a.mu.Unlock()
	})
	t.Play()

	if waitToKill {
		t.waitDone()
	}
	return c
}

// LastTween returns the most recently issued native tween handle for the
// object, or nil once it completed (or none was ever issued).
func (a *Animator) LastTween(object Object) *Tween {
	a.mu.Lock()
	t := a.lastTween[object]
	a.mu.Unlock()
	return t
}

// pivotTween animates a rigid group's frame. The group's pivot cannot be
// tweened directly (moving it must carry the whole group), so a transient
// proxy holds the frame as a plain property, every proxy change is bound
// back onto the group via PivotTo, and the proxy is destroyed once the
// timeline has elapsed.
func (a *Animator) pivotTween(object Object, info TweenInfo, target Value) *Chain {
	pv, ok := object.(Pivoter)
	if !ok {
		a.warnf("tween: object %v cannot be pivoted", object)
		return nil
	}
	tf, ok := target.(Transform)
	if !ok {
		a.warnf("tween: pivot target must be a Transform, got %s", kindOf(target))
		return nil
	}

	proxy := NewNode("pivot proxy")
	proxy.SetProperty("Transform", pv.Pivot())
	proxy.OnPropertyChanged(func(name string, v Value) {
		if name != "Transform" {
			return
		}
		if next, ok := v.(Transform); ok {
			pv.PivotTo(next)
		}
	})

	t := newTween(a, proxy, info, map[string]Value{"Transform": tf})
	c := tweenChain(a, t)
	t.Play()
	a.after(info.total(), proxy.Dispose)
	return c
}
