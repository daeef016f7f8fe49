package sway

import (
	"math"
	"testing"
)

func TestTweenReachesTargetExactly(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 1, Style: EaseLinear}, map[string]Value{"X": Scalar(10)}, false)

	stepFor(a, 1.2, 1.0/60)

	if got := scalarOf(t, n, "X"); got != 10 {
		t.Errorf("X = %v, want exactly 10", got)
	}
	if a.LastTween(n) != nil {
		t.Error("last tween record not cleared after completion")
	}
}

func TestTweenIntermediateValue(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 1, Style: EaseLinear}, map[string]Value{"X": Scalar(10)}, false)
	a.Step(0.5)

	if got := scalarOf(t, n, "X"); math.Abs(got-5) > 0.05 {
		t.Errorf("X = %v, want ~5 at halfway", got)
	}
}

func TestTweenBatchesMultipleProperties(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))
	n.SetProperty("Color", Color{1, 0, 0})

	a.Tween(n, TweenInfo{Duration: 0.5, Style: EaseLinear}, map[string]Value{
		"X":     Scalar(4),
		"Color": Color{0, 1, 0},
	}, false)
	stepFor(a, 0.6, 1.0/60)

	if got := scalarOf(t, n, "X"); got != 4 {
		t.Errorf("X = %v, want 4", got)
	}
	cv, _ := n.Property("Color")
	if cv.(Color) != (Color{0, 1, 0}) {
		t.Errorf("Color = %+v", cv)
	}
}

func TestZeroDurationTweenAppliesImmediately(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	fired := false
	a.Tween(n, TweenInfo{Duration: 0}, map[string]Value{"X": Scalar(7)}, false).
		AndThen(func() { fired = true })

	if got := scalarOf(t, n, "X"); got != 7 {
		t.Errorf("X = %v, want 7 without stepping", got)
	}
	if !fired {
		t.Error("chain should resolve synchronously for a zero-duration tween")
	}
	if a.LastTween(n) != nil {
		t.Error("record should be cleared by the synchronous completion")
	}
}

func TestLastTweenNewestWins(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 0.5, Style: EaseLinear}, map[string]Value{"X": Scalar(1)}, false)
	a.Tween(n, TweenInfo{Duration: 2, Style: EaseLinear}, map[string]Value{"X": Scalar(2)}, false)
	newest := a.LastTween(n)
	if newest == nil {
		t.Fatal("expected a recorded tween")
	}

	// The first tween completes here; its watcher must not clear the
	// newer record.
	stepFor(a, 0.7, 1.0/60)
	if a.LastTween(n) != newest {
		t.Error("stale completion clobbered the newer record")
	}

	stepFor(a, 1.5, 1.0/60)
	if a.LastTween(n) != nil {
		t.Error("record not cleared after the newest tween completed")
	}
	if got := scalarOf(t, n, "X"); got != 2 {
		t.Errorf("X = %v, want 2", got)
	}
}

func TestTweenReversesReturnsToStart(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(3))

	fired := false
	a.Tween(n, TweenInfo{Duration: 0.5, Style: EaseLinear, Reverses: true},
		map[string]Value{"X": Scalar(10)}, false).
		AndThen(func() { fired = true })

	stepFor(a, 0.5, 1.0/60)
	if got := scalarOf(t, n, "X"); got < 5 {
		t.Errorf("X = %v, expected to be away from start mid-reverse", got)
	}

	stepFor(a, 0.7, 1.0/60)
	if got := scalarOf(t, n, "X"); got != 3 {
		t.Errorf("X = %v, want exactly 3 after the reverse play", got)
	}
	if !fired {
		t.Error("chain should resolve after forward and reverse plays")
	}
}

func TestTweenRepeatCountExtendsTimeline(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	fired := false
	a.Tween(n, TweenInfo{Duration: 0.5, Style: EaseLinear, RepeatCount: 1},
		map[string]Value{"X": Scalar(10)}, false).
		AndThen(func() { fired = true })

	stepFor(a, 0.7, 1.0/60)
	if fired {
		t.Fatal("resolved before the repeat play finished")
	}
	stepFor(a, 0.5, 1.0/60)
	if !fired {
		t.Error("chain should resolve after the repeat play")
	}
}

func TestTweenDelayHoldsStart(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 0.5, Style: EaseLinear, DelayTime: 0.5},
		map[string]Value{"X": Scalar(10)}, false)

	stepFor(a, 0.4, 1.0/60)
	if got := scalarOf(t, n, "X"); got != 0 {
		t.Errorf("X = %v, want 0 during the delay", got)
	}
	stepFor(a, 0.8, 1.0/60)
	if got := scalarOf(t, n, "X"); got != 10 {
		t.Errorf("X = %v, want 10 after delay plus duration", got)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	fired := false
	a.Tween(n, TweenInfo{Duration: 1, Style: EaseLinear}, map[string]Value{"X": Scalar(10)}, false).
		AndThen(func() { fired = true })

	a.Step(0.25)
	frozen := scalarOf(t, n, "X")
	n.Dispose()
	stepFor(a, 1.0, 1.0/60)

	if got := scalarOf(t, n, "X"); got != frozen {
		t.Errorf("X moved from %v to %v after disposal", frozen, got)
	}
	if fired {
		t.Error("chain must not resolve for a cancelled tween")
	}
}

func TestTweenInvalidObjectReturnsEmptyChain(t *testing.T) {
	a := NewAnimator()
	fired := false
	a.Tween(nil, TweenInfo{Duration: 1}, map[string]Value{"X": Scalar(1)}, false).
		AndThen(func() { fired = true })
	if !fired {
		t.Error("empty chain should invoke callbacks immediately")
	}
}

func TestTweenInvalidObjectWaitsOutDuration(t *testing.T) {
	a := NewAnimator()
	done := make(chan struct{})
	var elapsedBefore bool
	a.after(0.15, func() { elapsedBefore = true })
	go func() {
		a.Tween(nil, TweenInfo{Duration: 0.2}, map[string]Value{"X": Scalar(1)}, true)
		close(done)
	}()
	driveUntil(t, a, done)
	if !elapsedBefore {
		t.Error("synchronous caller returned before the nominal duration elapsed")
	}
}

func TestTweenWaitToKillBlocksUntilDone(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	done := make(chan struct{})
	go func() {
		a.Tween(n, TweenInfo{Duration: 0.3, Style: EaseLinear}, map[string]Value{"X": Scalar(10)}, true)
		close(done)
	}()
	driveUntil(t, a, done)

	if got := scalarOf(t, n, "X"); got != 10 {
		t.Errorf("X = %v, want 10 when the synchronous call returns", got)
	}
}

func TestTweenMissingPropertySkippedOthersProceed(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 0.2, Style: EaseLinear}, map[string]Value{
		"X":       Scalar(5),
		"Missing": Scalar(1),
	}, false)
	stepFor(a, 0.3, 1.0/60)

	if got := scalarOf(t, n, "X"); got != 5 {
		t.Errorf("X = %v, want 5", got)
	}
	if _, ok := n.Property("Missing"); ok {
		t.Error("missing property must not be created")
	}
}

func TestTweenNilTargetValueSkippedOthersProceed(t *testing.T) {
	a := NewAnimator()
	n := NewNode("n")
	n.SetProperty("X", Scalar(0))
	n.SetProperty("Y", Scalar(0))

	a.Tween(n, TweenInfo{Duration: 0.2, Style: EaseLinear}, map[string]Value{
		"X": Scalar(5),
		"Y": nil,
	}, false)
	stepFor(a, 0.3, 1.0/60)

	if got := scalarOf(t, n, "X"); got != 5 {
		t.Errorf("X = %v, want 5", got)
	}
	if got := scalarOf(t, n, "Y"); got != 0 {
		t.Errorf("Y = %v, want untouched 0", got)
	}
}

func TestPivotTweenMovesWholeGroup(t *testing.T) {
	a := NewAnimator()
	group := NewNode("group")
	group.SetProperty("Transform", IdentityTransform())
	child := NewNode("child")
	child.SetProperty("Transform", Transform{Position: Vec3{1, 0, 0}, Rotation: IdentityQuat()})
	group.AddChild(child)

	a.Tween(group, TweenInfo{Duration: 0.5, Style: EaseLinear}, map[string]Value{
		"Pivot": Transform{Position: Vec3{10, 0, 0}, Rotation: IdentityQuat()},
	}, false)
	stepFor(a, 0.8, 1.0/60)

	if got := group.Pivot().Position.X; math.Abs(got-10) > 1e-9 {
		t.Errorf("group pivot X = %v, want 10", got)
	}
	cv, _ := child.Property("Transform")
	if got := cv.(Transform).Position.X; math.Abs(got-11) > 1e-9 {
		t.Errorf("child X = %v, want 11", got)
	}
}

func TestDebugModePanicsOnInvalidRequest(t *testing.T) {
	a := NewAnimator()
	a.Debug = true
	defer func() {
		if recover() == nil {
			t.Error("expected panic in debug mode")
		}
	}()
	a.Tween(nil, nil, map[string]Value{"X": Scalar(1)}, false)
}
