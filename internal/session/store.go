// internal/session/store.go

// Package session keeps per-chat collection state in memory. Sessions are a
// soft cache: the background sweep evicts any chat idle past the timeout,
// pending media and all.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultSweepInterval = 10 * time.Minute
)

// Store is the concurrent keyed registry of sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	idleTimeout time.Duration
	cron        *cron.Cron
}

// NewStore creates a Store whose sweep runs every sweepInterval and evicts
// sessions idle longer than idleTimeout. Call Start to begin sweeping.
func NewStore(idleTimeout, sweepInterval time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	s := &Store{
		sessions:    make(map[int64]*Session),
		idleTimeout: idleTimeout,
		cron:        cron.New(),
	}
	s.cron.Schedule(cron.Every(sweepInterval), cron.FuncJob(s.Sweep))
	return s
}

// Start begins the periodic sweep.
func (s *Store) Start() {
	s.cron.Start()
}

// Stop halts the sweeper. An in-flight sweep finishes.
func (s *Store) Stop() {
	s.cron.Stop()
}

// GetOrCreate returns the chat's session, creating it on first access.
// Creation happens exactly once per key under concurrent callers.
func (s *Store) GetOrCreate(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		return sess
	}
	sess = newSession(chatID)
	s.sessions[chatID] = sess
	return sess
}

// Get returns the chat's session if one exists.
func (s *Store) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Remove deletes the chat's session.
func (s *Store) Remove(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	slog.Info("session removed", "chat_id", chatID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts every session idle past the timeout. Evicting a session with
// buffered media is allowed; an in-flight flush for that chat keeps working
// on its own snapshot and simply goes unrecorded.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, sess := range s.sessions {
		if sess.Expired(s.idleTimeout) {
			delete(s.sessions, chatID)
			slog.Info("evicted idle session", "chat_id", chatID, "pending", sess.PendingLen())
		}
	}
	slog.Debug("session sweep complete", "active", len(s.sessions))
}
