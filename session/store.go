package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sua7dev/qr-generator/download"
)

// Session is one visitor's view: form state plus the last generated artifact.
type Session struct {
	ID    string
	State State
	// Filename is chosen when the session starts and reused for every
	// download in it.
	Filename string
	// Artifact is nil until a QR code has been generated.
	Artifact *download.Artifact

	lastSeen time.Time
}

// Store keeps sessions in memory and forgets them after ttl of inactivity.
type Store struct {
	sessions map[string]*Session
	mu       sync.Mutex
	ttl      time.Duration
	reducer  Reducer
	packager *download.Packager
	now      func() time.Time
	log      *slog.Logger
}

// NewStore creates an empty Store. New sessions start from
// Default(reducer.DefaultText) and take their filename from packager.
func NewStore(ttl time.Duration, reducer Reducer, packager *download.Packager, log *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		reducer:  reducer,
		packager: packager,
		now:      time.Now,
		log:      log,
	}
}

// Reducer returns the reducer sessions in this store are driven by.
func (s *Store) Reducer() Reducer {
	return s.reducer
}

// Create starts a new session and returns a copy of it.
func (s *Store) Create() (Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Session{}, err
	}

	sess := &Session{
		ID:       id.String(),
		State:    Default(s.reducer.DefaultText),
		Filename: s.packager.Filename(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Debug("session created", "session", sess.ID, "filename", sess.Filename)
	return *sess, nil
}

// Get returns a copy of the session with id and refreshes its idle timer.
// Expired sessions are reported as missing.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.expiredLocked(sess) {
		delete(s.sessions, id)
		return Session{}, false
	}
	sess.lastSeen = s.now()
	return *sess, true
}

// Save stores sess, replacing the previous copy with the same ID.
func (s *Store) Save(sess Session) {
	sess.lastSeen = s.now()

	s.mu.Lock()
	s.sessions[sess.ID] = &sess
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes sessions idle longer than the ttl and returns how many
// were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expiredLocked(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// expiredLocked reports whether sess is past its ttl. The caller MUST hold s.mu.
func (s *Store) expiredLocked(sess *Session) bool {
	return s.now().Sub(sess.lastSeen) > s.ttl
}

// StartCleanupLoop runs a goroutine that evicts idle sessions every interval
// until ctx is cancelled.
func (s *Store) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	go s.cleanupLoop(ctx, interval)
}

func (s *Store) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session cleanup loop stopped")
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				s.log.Debug("expired sessions removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
