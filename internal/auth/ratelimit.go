package auth

import (
	"sync"
	"time"
)

// Limiter tracks failed sign-in attempts per key and locks a key out after
// too many failures within the lockout window. State is in-memory and
// advisory; it resets on restart, which is acceptable because the identity
// provider remains the authoritative credential check.
type Limiter struct {
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time

	mu    sync.Mutex
	state map[string]*attemptState
}

type attemptState struct {
	failures    int
	lockedUntil time.Time
}

// NewLimiter creates a Limiter allowing maxAttempts failures before a
// lockout of the given duration.
func NewLimiter(maxAttempts int, lockout time.Duration) *Limiter {
	return &Limiter{
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
		state:       make(map[string]*attemptState),
	}
}

// Allow reports whether the key may attempt a sign-in, with the remaining
// lockout duration when it may not. An expired lockout clears the key.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.state[key]
	if !ok {
		return true, 0
	}

	if !s.lockedUntil.IsZero() {
		if remaining := s.lockedUntil.Sub(l.now()); remaining > 0 {
			return false, remaining
		}
		delete(l.state, key)
		return true, 0
	}

	return true, 0
}

// Failure records a failed attempt for the key, locking it out once the
// failure count reaches the maximum.
func (l *Limiter) Failure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.state[key]
	if !ok {
		s = &attemptState{}
		l.state[key] = s
	}

	s.failures++
	if s.failures >= l.maxAttempts {
		s.lockedUntil = l.now().Add(l.lockout)
	}
}

// Success clears all attempt state for the key.
func (l *Limiter) Success(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.state, key)
}
