package sway

import "fmt"

// seqState tracks the per-keypoint proxies materialized for one
// (object, sequence-property) pair. Torn down when the final keypoint's
// tween completes.
type seqState struct {
	proxies []*Node
}

// sequenceTween animates a piecewise-value-set property keypoint by
// keypoint. Sequences are immutable composites, so each keypoint gets a
// proxy node whose Time/Value (and Envelope, for numeric sequences) fields
// are tweened individually; any proxy edit rebuilds the full sequence and
// reassigns it to the object. The new sequence must have exactly as many
// keypoints as the current one.
//
// waitToKill is honored only on the tween of the final keypoint's time
// field, which doubles as the overall completion signal: its chain tears
// down the proxies and commits the exact target sequence, so incremental
// rebuild drift never survives the animation.
func (a *Animator) sequenceTween(object Object, info TweenInfo, prop string, target Value, waitToKill bool) *Chain {
	cur, ok := object.Property(prop)
	if !ok {
		a.warnf("sequence tween: object %v has no property %q", object, prop)
		return nil
	}

	var (
		n       int
		initial []map[string]Value
		goals   []map[string]Value
		numeric bool
	)
	switch want := target.(type) {
	case NumberSequence:
		have, ok := cur.(NumberSequence)
		if !ok {
			a.warnf("sequence tween: property %q is %v, target is NumberSequence", prop, cur.Kind())
			return nil
		}
		if len(have.Keypoints) != len(want.Keypoints) {
			a.warnf("sequence tween: keypoint count mismatch on %q (%d vs %d)",
				prop, len(have.Keypoints), len(want.Keypoints))
			return nil
		}
		n = len(want.Keypoints)
		numeric = true
		initial = make([]map[string]Value, n)
		goals = make([]map[string]Value, n)
		for i := 0; i < n; i++ {
			h, w := have.Keypoints[i], want.Keypoints[i]
			initial[i] = map[string]Value{
				"Time": Scalar(h.Time), "Value": Scalar(h.Value), "Envelope": Scalar(h.Envelope),
			}
			goals[i] = map[string]Value{
				"Time": Scalar(w.Time), "Value": Scalar(w.Value), "Envelope": Scalar(w.Envelope),
			}
		}
	case ColorSequence:
		have, ok := cur.(ColorSequence)
		if !ok {
			a.warnf("sequence tween: property %q is %v, target is ColorSequence", prop, cur.Kind())
			return nil
		}
		if len(have.Keypoints) != len(want.Keypoints) {
			a.warnf("sequence tween: keypoint count mismatch on %q (%d vs %d)",
				prop, len(have.Keypoints), len(want.Keypoints))
			return nil
		}
		n = len(want.Keypoints)
		initial = make([]map[string]Value, n)
		goals = make([]map[string]Value, n)
		for i := 0; i < n; i++ {
			h, w := have.Keypoints[i], want.Keypoints[i]
			initial[i] = map[string]Value{"Time": Scalar(h.Time), "Value": h.Color}
			goals[i] = map[string]Value{"Time": Scalar(w.Time), "Value": w.Color}
		}
	default:
		a.warnf("sequence tween: unsupported value type %s for %q", kindOf(target), prop)
		return nil
	}

	st := a.sequenceState(object, prop, n, numeric, initial)

	// Tween every keypoint field; the final keypoint's Time tween anchors
	// completion.
	var anchor *Chain
	for i := 0; i < n; i++ {
		proxy := st.proxies[i]
		for field, goal := range goals[i] {
			if field == "Time" {
				continue
			}
			a.Tween(proxy, info, map[string]Value{field: goal}, false)
		}
		c := a.Tween(proxy, info, map[string]Value{"Time": goals[i]["Time"]}, false)
		if i == n-1 {
			anchor = c
		}
	}

	anchor.AndThen(func() {
		a.mu.Lock()
		if perObj := a.seqs[object]; perObj != nil && perObj[prop] == st {
			delete(perObj, prop)
			if len(perObj) == 0 {
				delete(a.seqs, object)
			}
		}
		a.mu.Unlock()
		for _, p := range st.proxies {
			p.Dispose()
		}
		// Commit the exact target to shed incremental rebuild drift.
		object.SetProperty(prop, target)
	})

	if waitToKill {
		anchor.Wait()
	}
	return anchor
}

// sequenceState returns the proxy set for the pair, materializing it with
// the given initial keypoint fields on first use.
func (a *Animator) sequenceState(object Object, prop string, n int, numeric bool, initial []map[string]Value) *seqState {
	a.mu.Lock()
	perObj := a.seqs[object]
	if perObj != nil {
		if st := perObj[prop]; st != nil {
			a.mu.Unlock()
			return st
		}
	}
	a.mu.Unlock()

	st := &seqState{proxies: make([]*Node, n)}
	for i := 0; i < n; i++ {
		p := NewNode(fmt.Sprintf("%s keypoint %d", prop, i))
		for field, v := range initial[i] {
			p.SetProperty(field, v)
		}
		st.proxies[i] = p
	}
	rebuild := func() { rebuildSequence(object, prop, st, numeric) }
	for _, p := range st.proxies {
		p.OnPropertyChanged(func(string, Value) { rebuild() })
	}

	a.mu.Lock()
	if perObj = a.seqs[object]; perObj == nil {
		perObj = make(map[string]*seqState, 1)
		a.seqs[object] = perObj
	}
	if existing := perObj[prop]; existing != nil {
		// Lost a materialization race; use the surviving set.
		a.mu.Unlock()
		for _, p := range st.proxies {
			p.Dispose()
		}
		return existing
	}
	perObj[prop] = st
	a.mu.Unlock()
	return st
}

// rebuildSequence reassembles the full sequence value from the proxies and
// reassigns it to the object.
func rebuildSequence(object Object, prop string, st *seqState, numeric bool) {
	if numeric {
		seq := NumberSequence{Keypoints: make([]NumberKeypoint, len(st.proxies))}
		for i, p := range st.proxies {
			if p.IsDisposed() {
				return
			}
			seq.Keypoints[i] = NumberKeypoint{
				Time:     scalarProp(p, "Time"),
				Value:    scalarProp(p, "Value"),
				Envelope: scalarProp(p, "Envelope"),
			}
		}
		object.SetProperty(prop, seq)
		return
	}
	seq := ColorSequence{Keypoints: make([]ColorKeypoint, len(st.proxies))}
	for i, p := range st.proxies {
		if p.IsDisposed() {
			return
		}
		kp := ColorKeypoint{Time: scalarProp(p, "Time")}
		if v, ok := p.Property("Value"); ok {
			if c, ok := v.(Color); ok {
				kp.Color = c
			}
		}
		seq.Keypoints[i] = kp
	}
	object.SetProperty(prop, seq)
}

func scalarProp(p *Node, name string) float64 {
	if v, ok := p.Property(name); ok {
		if s, ok := v.(Scalar); ok {
			return float64(s)
		}
	}
	return 0
}
