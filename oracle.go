package sway

import "math"

// DefaultTolerance is the settlement tolerance used when IsAnimating is
// called without an explicit one.
const DefaultTolerance = 1e-4

// IsAnimating reports whether the spring is still live, along with the
// value a driver should write this tick: the current simulated position
// while live, or the exact target value once settled. Returning the target
// verbatim (not the asymptotically-close position) guarantees consumers see
// a clean final value.
func (a *Animator) IsAnimating(s *Spring, tolerance ...float64) (bool, Value) {
	if s == nil {
		a.warnf("isAnimating: nil spring")
		return false, nil
	}
	eps := DefaultTolerance
	if len(tolerance) > 0 && tolerance[0] > 0 {
		eps = tolerance[0]
	}

	// Spring construction rejects unsupported kinds, so every kind seen
	// here is springable.
	s.mu.Lock()
	kind := s.kind
	live := springLive(kind, s.pos, s.vel, s.tgt, eps)
	var v Value
	if live {
		v = unflatten(kind, s.pos)
	} else {
		v = s.target
	}
	s.mu.Unlock()

	return live, v
}

// springLive decides liveness per value category: vector-like kinds settle
// when displacement and velocity magnitudes drop within tolerance;
// paired-dimension kinds check every scalar sub-component; transforms
// check their translational and rotational parts separately.
func springLive(k Kind, pos, vel, tgt []float64, eps float64) bool {
	switch k {
	case KindScalar:
		return math.Abs(pos[0]-tgt[0]) > eps || math.Abs(vel[0]) > eps
	case KindVec2, KindVec3, KindColor:
		return deltaMag(pos, tgt, 0, len(pos)) > eps || mag(vel, 0, len(vel)) > eps
	case KindDim, KindDim2:
		for i := range pos {
			if math.Abs(pos[i]-tgt[i]) > eps || math.Abs(vel[i]) > eps {
				return true
			}
		}
		return false
	case KindTransform:
		return deltaMag(pos, tgt, 0, 3) > eps || mag(vel, 0, 3) > eps ||
			deltaMag(pos, tgt, 3, 6) > eps || mag(vel, 3, 6) > eps
	}
	return false
}

func deltaMag(a, b []float64, lo, hi int) float64 {
	sum := 0.0
	for i := lo; i < hi; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func mag(a []float64, lo, hi int) float64 {
	sum := 0.0
	for i := lo; i < hi; i++ {
		sum += a[i] * a[i]
	}
	return math.Sqrt(sum)
}
