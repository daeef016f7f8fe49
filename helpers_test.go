package sway

import (
	"testing"
	"time"
)

// stepFor advances the animator by total seconds in fixed dt increments.
func stepFor(a *Animator, total, dt float64) {
	for t := 0.0; t < total; t += dt {
		a.Step(dt)
	}
}

// scalarOf fails the test unless the property holds a Scalar, and returns it.
func scalarOf(t *testing.T, o Object, name string) float64 {
	t.Helper()
	v, ok := o.Property(name)
	if !ok {
		t.Fatalf("property %q missing", name)
	}
	s, ok := v.(Scalar)
	if !ok {
		t.Fatalf("property %q is %T, want Scalar", name, v)
	}
	return float64(s)
}

// driveUntil steps the animator until done closes, failing the test after
// a wall-clock deadline. Used to exercise synchronous (waitToKill) entry
// points, which block their caller while another goroutine steps.
func driveUntil(t *testing.T, a *Animator, done <-chan struct{}) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		a.Step(0.01)
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("timed out driving animator")
		default:
		}
	}
}
