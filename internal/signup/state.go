package signup

import "sync"

// CaptainState holds the signed-in captain for the rest of the application.
// It is created once and handed to whatever needs it.
type CaptainState struct {
	mu        sync.RWMutex
	captain   *Captain
	listeners []func(Captain)
}

// NewCaptainState creates an empty CaptainState.
func NewCaptainState() *CaptainState {
	return &CaptainState{}
}

// SetCaptain replaces the current captain and notifies subscribers.
func (s *CaptainState) SetCaptain(c Captain) {
	s.mu.Lock()
	s.captain = &c
	listeners := append(([]func(Captain))(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}

// Captain returns the current captain, if one is set.
func (s *CaptainState) Captain() (Captain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.captain == nil {
		return Captain{}, false
	}
	return *s.captain, true
}

// Clear forgets the current captain.
func (s *CaptainState) Clear() {
	s.mu.Lock()
	s.captain = nil
	s.mu.Unlock()
}

// Subscribe registers fn to run after every SetCaptain.
func (s *CaptainState) Subscribe(fn func(Captain)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
