package memory

import (
	"time"

	"campus-guide-be/pkg/guide/engine"

	"github.com/patrickmn/go-cache"
)

// Session is one live guide conversation owned by a user.
type Session struct {
	ID        string
	UserID    string
	Engine    *engine.Engine
	CreatedAt time.Time
}

// SessionRepository keeps engines in memory. Every Get pushes the expiry
// back, so only idle sessions are evicted.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl time.Duration, onEvicted func(*Session)) *SessionRepository {
	// purge expired items every 10 minutes at most
	cleanup := ttl
	if cleanup > 10*time.Minute {
		cleanup = 10 * time.Minute
	}
	c := cache.New(ttl, cleanup)
	if onEvicted != nil {
		c.OnEvicted(func(_ string, v interface{}) {
			onEvicted(v.(*Session))
		})
	}
	return &SessionRepository{cache: c, ttl: ttl}
}

func (r *SessionRepository) Save(session *Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*Session, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	session := x.(*Session)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session, true
}

// Peek reads a session without extending its life.
func (r *SessionRepository) Peek(sessionID string) (*Session, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	return x.(*Session), true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
