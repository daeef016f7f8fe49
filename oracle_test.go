package sway

import "testing"

func TestIsAnimatingScalar(t *testing.T) {
	a := NewAnimator()
	s, err := newSpring(a, SpringConfig{Initial: Scalar(0), Target: Scalar(1)})
	if err != nil {
		t.Fatal(err)
	}

	live, v := a.IsAnimating(s)
	if !live {
		t.Fatal("spring displaced by 1 should be live")
	}
	if v.(Scalar) != 0 {
		t.Errorf("live value = %v, want current position 0", v)
	}

	// Move the simulated state onto the target: settled.
	s.mu.Lock()
	s.pos[0] = 1
	s.mu.Unlock()
	live, v = a.IsAnimating(s)
	if live {
		t.Error("spring at rest on target should be settled")
	}
	if v != s.target {
		t.Errorf("settled value = %v, want the target verbatim", v)
	}
}

func TestIsAnimatingVelocityKeepsLive(t *testing.T) {
	a := NewAnimator()
	s, err := newSpring(a, SpringConfig{Initial: Scalar(1), Target: Scalar(1), Velocity: Scalar(2)})
	if err != nil {
		t.Fatal(err)
	}
	if live, _ := a.IsAnimating(s); !live {
		t.Error("spring on target but still moving should be live")
	}
}

func TestIsAnimatingTolerance(t *testing.T) {
	a := NewAnimator()
	s, err := newSpring(a, SpringConfig{Initial: Scalar(0), Target: Scalar(0.01)})
	if err != nil {
		t.Fatal(err)
	}
	if live, _ := a.IsAnimating(s); !live {
		t.Error("0.01 displacement exceeds the default tolerance")
	}
	if live, _ := a.IsAnimating(s, 0.1); live {
		t.Error("0.01 displacement is within an explicit 0.1 tolerance")
	}
}

func TestIsAnimatingDimChecksEveryComponent(t *testing.T) {
	a := NewAnimator()
	s, err := newSpring(a, SpringConfig{
		Initial: Dim2{X: Dim{Scale: 0, Offset: 0}, Y: Dim{Scale: 0, Offset: 0}},
		Target:  Dim2{X: Dim{Scale: 0, Offset: 0}, Y: Dim{Scale: 0, Offset: 3}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if live, _ := a.IsAnimating(s); !live {
		t.Error("a single displaced dim component should keep the spring live")
	}
	s.mu.Lock()
	copy(s.pos, s.tgt)
	s.mu.Unlock()
	if live, _ := a.IsAnimating(s); live {
		t.Error("all components on target should settle")
	}
}

func TestIsAnimatingTransformRotationOnly(t *testing.T) {
	a := NewAnimator()
	from := IdentityTransform()
	to := Transform{Rotation: QuatFromAxisAngle(Vec3{0, 1, 0}, 1)}
	s, err := newSpring(a, SpringConfig{Initial: from, Target: to})
	if err != nil {
		t.Fatal(err)
	}

	// Translation already matches; only the rotational part is displaced.
	if live, _ := a.IsAnimating(s); !live {
		t.Error("rotational displacement alone should keep the spring live")
	}
	s.mu.Lock()
	copy(s.pos, s.tgt)
	s.mu.Unlock()
	live, v := a.IsAnimating(s)
	if live {
		t.Error("transform on target should settle")
	}
	if v.(Transform) != to {
		t.Errorf("settled transform = %+v, want the exact target", v)
	}
}

func TestIsAnimatingNilSpring(t *testing.T) {
	a := NewAnimator()
	live, v := a.IsAnimating(nil)
	if live || v != nil {
		t.Errorf("nil spring: got (%v, %v), want (false, nil)", live, v)
	}
}
