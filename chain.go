package sway

import "sync"

// Chain wraps one in-flight animation and notifies registered callbacks
// exactly once when it reaches terminal completion. Every public animation
// entry point returns a Chain; a request that failed outright returns an
// already-resolved chain, so chained callbacks fire immediately.
//
// A tween-backed chain resolves only on successful completion; a tween
// that is destroyed, superseded, or loses its target never resolves its
// chain. A spring-backed chain polls the termination oracle each tick once
// the first callback is registered, and resolves on settlement.
type Chain struct {
	a *Animator

	mu        sync.Mutex
	tween     *Tween
	spring    *Spring
	resolved  bool
	polling   bool
	callbacks []func()
	waiters   []chan struct{}
}

func emptyChain(a *Animator) *Chain {
	return &Chain{a: a, resolved: true}
}

func tweenChain(a *Animator, t *Tween) *Chain {
	c := &Chain{a: a, tween: t}
	t.Completed(func(state PlaybackState) {
		if state == PlaybackCompleted {
			c.resolve()
		}
	})
	return c
}

func springChain(a *Animator, s *Spring) *Chain {
	return &Chain{a: a, spring: s}
}

// loopChain is resolved explicitly by its owning animation loop.
func loopChain(a *Animator) *Chain {
	return &Chain{a: a}
}

// AndThen registers a callback to run once the wrapped animation reaches
// terminal completion, and returns the same chain so registrations can be
// stacked. If the animation already completed (or the chain wraps no
// animation at all), the callback runs immediately.
func (c *Chain) AndThen(fn func()) *Chain {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		fn()
		return c
	}
	c.callbacks = append(c.callbacks, fn)
	if c.spring != nil && !c.polling {
		c.polling = true
		c.a.addStepper(&springPoll{c: c})
	}
	c.mu.Unlock()
	return c
}

// Wait blocks until the chain resolves. The animator must be stepped from
// another goroutine.
func (c *Chain) Wait() {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return
	}
	ch := make(chan struct{})
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	<-ch
}

func (c *Chain) resolve() {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return
	}
	c.resolved = true
	callbacks := c.callbacks
	waiters := c.waiters
	c.callbacks = nil
	c.waiters = nil
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	for _, ch := range waiters {
		close(ch)
	}
}

// springPoll resolves a spring-backed chain once the termination oracle
// reports settlement.
type springPoll struct {
	c *Chain
}

func (p *springPoll) step(float64) bool {
	live, _ := p.c.a.IsAnimating(p.c.spring)
	if live {
		return false
	}
	p.c.resolve()
	return true
}
