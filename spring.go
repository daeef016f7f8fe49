package sway

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig configures a spring. Damping and Speed default to 1 when
// left zero. Exactly the fields below are recognized; Position, Initial,
// Velocity, and Target must all share one springable kind.
//
// Initial overrides Position as the starting value (property-driving
// springs set it to the property's current value). Clock, when set,
// replaces the animator tick as the spring's time source; it must return
// monotonically increasing seconds.
type SpringConfig struct {
	Position Value
	Velocity Value
	Target   Value
	Initial  Value
	Damping  float64
	Speed    float64
	Clock    func() float64
}

// Spring is a simulated value driven toward its target by a damped
// harmonic integrator. Springs are advanced per-component by harmonica;
// the value's kind fixes the component layout.
type Spring struct {
	a *Animator

	mu        sync.Mutex
	kind      Kind
	pos, vel  []float64
	tgt       []float64
	target    Value // exact target value, returned verbatim on settlement
	damping   float64
	speed     float64
	clock     func() float64
	lastClock float64

	// integrator cache, rebuilt when dt or tuning changes
	coeffDT      float64
	coeffSpeed   float64
	coeffDamping float64
	integrator   harmonica.Spring
}

func newSpring(a *Animator, cfg SpringConfig) (*Spring, error) {
	base := cfg.Initial
	if base == nil {
		base = cfg.Position
	}
	if base == nil {
		base = cfg.Target
	}
	if base == nil {
		return nil, fmt.Errorf("spring config needs an initial, position, or target value")
	}
	kind := base.Kind()
	if !springable(kind) {
		return nil, fmt.Errorf("unsupported spring value type %v", kind)
	}
	for _, v := range []Value{cfg.Position, cfg.Velocity, cfg.Target, cfg.Initial} {
		if v != nil && v.Kind() != kind {
			return nil, fmt.Errorf("spring config mixes %v and %v values", kind, v.Kind())
		}
	}
	if cfg.Damping < 0 || cfg.Speed < 0 {
		return nil, fmt.Errorf("spring damping and speed must not be negative")
	}

	s := &Spring{
		a:       a,
		kind:    kind,
		pos:     flatten(base),
		damping: cfg.Damping,
		speed:   cfg.Speed,
		clock:   cfg.Clock,
	}
	if s.damping == 0 {
		s.damping = 1
	}
	if s.speed == 0 {
		s.speed = 1
	}
	if cfg.Velocity != nil {
		s.vel = flatten(cfg.Velocity)
	} else {
		s.vel = make([]float64, componentCount(kind))
	}
	s.target = cfg.Target
	if s.target == nil {
		s.target = base
	}
	s.tgt = flatten(s.target)
	if s.clock != nil {
		s.lastClock = s.clock()
	}
	return s, nil
}

// ValueKind returns the kind of value the spring simulates.
func (s *Spring) ValueKind() Kind { return s.kind }

// Position returns the spring's current simulated value.
func (s *Spring) Position() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unflatten(s.kind, s.pos)
}

// Velocity returns the spring's current velocity, expressed in the same
// kind as the position.
func (s *Spring) Velocity() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unflatten(s.kind, s.vel)
}

// Target returns the exact target value the spring settles toward.
func (s *Spring) Target() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// SetTarget redirects the spring toward a new target of the same kind.
func (s *Spring) SetTarget(v Value) error {
	if v == nil || v.Kind() != s.kind {
		return fmt.Errorf("spring target: want %v, got %v", s.kind, kindOf(v))
	}
	s.mu.Lock()
	s.target = v
	s.tgt = flatten(v)
	s.mu.Unlock()
	return nil
}

// Impulse perturbs the spring's velocity by delta.
func (s *Spring) Impulse(delta Value) error {
	if delta == nil || delta.Kind() != s.kind {
		return fmt.Errorf("spring impulse: want %v, got %v", s.kind, kindOf(delta))
	}
	d := flatten(delta)
	s.mu.Lock()
	for i := range s.vel {
		s.vel[i] += d[i]
	}
	s.mu.Unlock()
	return nil
}

// retune updates the spring's mutable parameters in place. Position,
// initial value, and clock are deliberately excluded: a repeat impulse on a
// live spring redirects it without restarting the simulation.
func (s *Spring) retune(cfg SpringConfig) {
	s.mu.Lock()
	if cfg.Damping > 0 {
		s.damping = cfg.Damping
	}
	if cfg.Speed > 0 {
		s.speed = cfg.Speed
	}
	if cfg.Target != nil && cfg.Target.Kind() == s.kind {
		s.target = cfg.Target
		s.tgt = flatten(cfg.Target)
	}
	if cfg.Velocity != nil && cfg.Velocity.Kind() == s.kind {
		s.vel = flatten(cfg.Velocity)
	}
	s.mu.Unlock()
}

// advance integrates the spring forward. dt comes from the animator tick
// unless a custom clock is installed.
func (s *Spring) advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock != nil {
		now := s.clock()
		dt = now - s.lastClock
		s.lastClock = now
	}
	if dt <= 0 {
		return
	}
	if dt != s.coeffDT || s.speed != s.coeffSpeed || s.damping != s.coeffDamping {
		s.coeffDT = dt
		s.coeffSpeed = s.speed
		s.coeffDamping = s.damping
		s.integrator = harmonica.NewSpring(dt, s.speed, s.damping)
	}
	for i := range s.pos {
		s.pos[i], s.vel[i] = s.integrator.Update(s.pos[i], s.vel[i], s.tgt[i])
	}
}

func kindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}

// CreateSpring builds a spring from the config and stores it under name,
// silently replacing any previous spring with the same name. Returns nil
// (after reporting the error) when the config is invalid.
func (a *Animator) CreateSpring(name string, cfg SpringConfig) *Spring {
	s, err := newSpring(a, cfg)
	if err != nil {
		a.warnf("createSpring %q: %v", name, err)
		return nil
	}
	a.mu.Lock()
	a.named[name] = s
	a.mu.Unlock()
	return s
}

// Register is an alias for CreateSpring.
func (a *Animator) Register(name string, cfg SpringConfig) *Spring {
	return a.CreateSpring(name, cfg)
}

// GetSpring returns the named spring, or nil (after reporting) when no
// spring with that name exists.
func (a *Animator) GetSpring(name string) *Spring {
	a.mu.Lock()
	s := a.named[name]
	a.mu.Unlock()
	if s == nil {
		a.warnf("getSpring: no spring named %q", name)
	}
	return s
}

// Inquire is an alias for GetSpring.
func (a *Animator) Inquire(name string) *Spring {
	return a.GetSpring(name)
}

// Impulse applies a velocity impulse to each targeted property's spring,
// creating the spring (seeded at the property's current value) on first
// use and retuning the existing one otherwise. At most one spring and one
// driver loop exist per (object, property); a second impulse before
// settlement is picked up by the existing loop on its next tick.
//
// With waitToKill set, the first property that starts a new driver loop is
// driven synchronously: the call blocks until that spring settles while
// any remaining properties animate in the background. Unsupported impulse
// kinds are reported per property and skipped; other properties in the
// same call proceed independently.
//
// The returned chain wraps the first driven spring, or is empty when no
// property could be animated.
func (a *Animator) Impulse(object Object, cfg SpringConfig, properties map[string]Value, waitToKill bool) *Chain {
	if object == nil {
		a.warnf("impulse: invalid target object")
		return emptyChain(a)
	}

	var chainSpring *Spring
	firstSync := waitToKill
	for name, impulse := range properties {
		if impulse == nil || !springable(impulse.Kind()) {
			a.warnf("impulse: unsupported value type %s for property %q", kindOf(impulse), name)
			continue
		}
		cur, ok := object.Property(name)
		if !ok {
			a.warnf("impulse: object %v has no property %q", object, name)
			continue
		}
		if cur.Kind() != impulse.Kind() {
			a.warnf("impulse: property %q is %v, impulse is %v", name, cur.Kind(), impulse.Kind())
			continue
		}

		seeded := cfg
		seeded.Initial = cur

		a.mu.Lock()
		props := a.objSprings[object]
		var s *Spring
		if props != nil {
			s = props[name]
		}
		created := false
		var err error
		if s == nil {
			s, err = newSpring(a, seeded)
			if err == nil {
				if props == nil {
					props = make(map[string]*Spring, 1)
					a.objSprings[object] = props
				}
				props[name] = s
				created = true
			}
		} else {
			s.retune(cfg)
		}
		a.mu.Unlock()

		if err != nil {
			a.warnf("impulse: property %q: %v", name, err)
			continue
		}
		if err := s.Impulse(impulse); err != nil {
			a.warnf("impulse: property %q: %v", name, err)
			continue
		}
		if chainSpring == nil {
			chainSpring = s
		}
		if created {
			loop := &springLoop{a: a, object: object, prop: name, spring: s, done: make(chan struct{})}
			a.addStepper(loop)
			if firstSync {
				firstSync = false
				<-loop.done
			}
		}
	}

	if chainSpring == nil {
		return emptyChain(a)
	}
	return springChain(a, chainSpring)
}

// Target drives each property's spring toward a new target from rest: it
// is an impulse of zero with the target swapped in, so current motion and
// spring identity are preserved.
//
// Synchronous waiting across multiple properties is deliberately partial
// (matching the original protocol): with waitToKill set, only the first
// property is awaited; the rest animate in the background.
func (a *Animator) Target(object Object, cfg SpringConfig, properties map[string]Value, waitToKill bool) {
	first := true
	for name, target := range properties {
		if target == nil || !springable(target.Kind()) {
			a.warnf("target: unsupported value type %s for property %q", kindOf(target), name)
			continue
		}
		retargeted := cfg
		retargeted.Target = target
		a.Impulse(object, retargeted, map[string]Value{name: zeroValue(target.Kind())}, waitToKill && first)
		first = false
	}
}

// springLoop drives one property from its spring until the termination
// oracle reports settlement, then snaps the property to the exact target
// and releases the spring slot.
type springLoop struct {
	a      *Animator
	object Object
	prop   string
	spring *Spring
	done   chan struct{}
}

func (l *springLoop) step(dt float64) bool {
	if isDisposed(l.object) {
		l.release()
		close(l.done)
		return true
	}
	l.spring.advance(dt)
	live, v := l.a.IsAnimating(l.spring)
	l.object.SetProperty(l.prop, v)
	if live {
		return false
	}
	l.release()
	close(l.done)
	return true
}

// release removes the (object, property) registry entry unless a newer
// spring already replaced this loop's.
func (l *springLoop) release() {
	l.a.mu.Lock()
	if props := l.a.objSprings[l.object]; props != nil && props[l.prop] == l.spring {
		delete(props, l.prop)
		if len(props) == 0 {
			delete(l.a.objSprings, l.object)
		}
	}
	l.a.mu.Unlock()
}
