package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"nlsqlchat/metrics"
	"nlsqlchat/session"
)

// Sessions holds one *session.App per session id in memory. Entries expire after ttl
// without access; nothing is ever written to disk.
type Sessions struct {
	cache  *cache.Cache
	ttl    time.Duration
	newApp func() *session.App
	mu     sync.Mutex
}

func New(ttl time.Duration, newApp func() *session.App) *Sessions {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	s := &Sessions{
		cache:  cache.New(ttl, cleanup),
		ttl:    ttl,
		newApp: newApp,
	}
	s.cache.OnEvicted(func(string, interface{}) {
		metrics.SetActiveSessions(s.cache.ItemCount())
	})
	return s
}

// get returns the app for id and extends its lifetime. Callers hold s.mu.
func (s *Sessions) get(id string) (*session.App, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	app, ok := v.(*session.App)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, app, s.ttl)
	return app, true
}

// GetOrCreate returns the app for id, creating a fresh one on first use or after expiry.
func (s *Sessions) GetOrCreate(id string) *session.App {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app, ok := s.get(id); ok {
		return app
	}
	app := s.newApp()
	s.cache.Set(id, app, s.ttl)
	metrics.SetActiveSessions(s.cache.ItemCount())
	return app
}

func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
