package httpapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// session is one game played over HTTP. Its engine is guarded by mu.
type session struct {
	mu         sync.Mutex
	id         string
	eng        *engine.Engine
	scoreSaved bool
	createdAt  time.Time
	updatedAt  time.Time
}

// sessions is an in-memory session table keyed by id.
type sessions struct {
	mu sync.RWMutex
	m  map[string]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[string]*session)}
}

// create starts a new game with a fresh engine and stores it.
func (s *sessions) create(opts ...engine.Option) *session {
	eng := engine.New(opts...)
	eng.NewGame()

	now := time.Now()
	sess := &session{
		id:        uuid.NewString(),
		eng:       eng,
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.m[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessions) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.m[id]
	return sess, ok
}

// remove deletes a session and reports whether it existed.
func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false
	}
	delete(s.m, id)
	return true
}

func (s *sessions) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// expire drops sessions idle for longer than ttl and returns how many went.
func (s *sessions) expire(ttl time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.m {
		sess.mu.Lock()
		idle := now.Sub(sess.updatedAt)
		sess.mu.Unlock()
		if idle > ttl {
			delete(s.m, id)
			n++
		}
	}
	return n
}
