package sway

import "sync"

// PlaybackState is the terminal state a tween handle finishes in.
type PlaybackState uint8

const (
	// PlaybackCompleted means the tween ran its full timeline.
	PlaybackCompleted PlaybackState = iota
	// PlaybackCancelled means the tween was destroyed or its target was
	// disposed before the timeline finished.
	PlaybackCancelled
)

// signal is a one-shot completion signal. Connections registered after the
// signal fires are invoked immediately with the recorded state.
type signal struct {
	mu    sync.Mutex
	fired bool
	state PlaybackState
	conns []func(PlaybackState)
}

func (s *signal) connect(fn func(PlaybackState)) {
	s.mu.Lock()
	if s.fired {
		state := s.state
		s.mu.Unlock()
		fn(state)
		return
	}
	s.conns = append(s.conns, fn)
	s.mu.Unlock()
}

// fire delivers the terminal state exactly once. Later calls are ignored.
func (s *signal) fire(state PlaybackState) {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return
	}
	s.fired = true
	s.state = state
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, fn := range conns {
		fn(state)
	}
}
