package sway

import "testing"

func TestEmptyChainFiresImmediately(t *testing.T) {
	a := NewAnimator()
	count := 0
	c := emptyChain(a)
	c.AndThen(func() { count++ }).AndThen(func() { count++ })
	if count != 2 {
		t.Errorf("fired %d callbacks, want 2", count)
	}
}

func TestChainCallbacksFireExactlyOnce(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	count := 0
	c := a.Tween(n, TweenInfo{Duration: 0.2, Style: EaseLinear}, map[string]Value{"X": Scalar(1)}, false)
	c.AndThen(func() { count++ })
	c.AndThen(func() { count++ })

	stepFor(a, 0.5, 1.0/60)
	stepFor(a, 0.5, 1.0/60)

	if count != 2 {
		t.Errorf("fired %d times, want 2 (each callback once)", count)
	}

	// Registration after resolution fires immediately.
	c.AndThen(func() { count++ })
	if count != 3 {
		t.Errorf("late registration: count = %d, want 3", count)
	}
}

func TestChainDoesNotFireForDestroyedTween(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	fired := false
	c := a.Tween(n, TweenInfo{Duration: 1, Style: EaseLinear}, map[string]Value{"X": Scalar(1)}, false)
	c.AndThen(func() { fired = true })

	a.Step(0.1)
	a.LastTween(n).Destroy()
	stepFor(a, 1.5, 1.0/60)

	if fired {
		t.Error("chain resolved for an interrupted tween")
	}
}

func TestSpringChainResolvesOnSettlement(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	fired := false
	a.Target(n, SpringConfig{Speed: 10, Damping: 1}, map[string]Value{"X": Scalar(5)}, false)
	// Grab the spring's chain via a second zero impulse on the same pair.
	a.Impulse(n, SpringConfig{}, map[string]Value{"X": Scalar(0)}, false).
		AndThen(func() { fired = true })

	stepFor(a, 10, 1.0/60)

	if !fired {
		t.Error("spring chain never resolved")
	}
	if got := scalarOf(t, n, "X"); got != 5 {
		t.Errorf("X = %v, want exactly 5", got)
	}
}
