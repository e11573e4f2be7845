package service

import (
	"context"
	"sync"
	"time"

	"firstvibe/internal/core/leadform"
	"firstvibe/internal/platform/logger"
)

type entry struct {
	ctl      *leadform.Controller
	lastSeen time.Time
}

// Sessions holds open form controllers and forgets idle ones
type Sessions struct {
	mu  sync.Mutex
	m   map[string]*entry
	ttl time.Duration
	now func() time.Time
}

// NewSessions returns an empty registry with the given idle ttl
func NewSessions(ttl time.Duration, now func() time.Time) *Sessions {
	if now == nil {
		now = time.Now
	}
	return &Sessions{m: map[string]*entry{}, ttl: ttl, now: now}
}

// Add registers ctl under id and returns its expiry
func (s *Sessions) Add(id string, ctl *leadform.Controller) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	s.m[id] = &entry{ctl: ctl, lastSeen: t}
	return t.Add(s.ttl)
}

// Get returns the controller for id and refreshes its expiry
func (s *Sessions) Get(id string) (*leadform.Controller, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return nil, time.Time{}, false
	}
	t := s.now()
	if s.ttl > 0 && t.Sub(e.lastSeen) >= s.ttl {
		delete(s.m, id)
		return nil, time.Time{}, false
	}
	e.lastSeen = t
	return e.ctl, t.Add(s.ttl), true
}

// Len reports the number of tracked sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Sweep drops sessions idle for at least ttl and returns how many went
func (s *Sessions) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	n := 0
	for id, e := range s.m {
		if t.Sub(e.lastSeen) >= s.ttl {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// Run sweeps every half ttl until ctx is done
func (s *Sessions) Run(ctx context.Context) error {
	if s.ttl <= 0 {
		<-ctx.Done()
		return nil
	}
	every := s.ttl / 2
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()

	log := logger.Named("leads.sessions")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("expired", n).Int("open", s.Len()).Msg("form sessions swept")
			}
		}
	}
}
