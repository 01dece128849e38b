// internal/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/user/albumgram/internal/types"
)

// State tracks where a session is in the collect/caption lifecycle.
type State int

const (
	// StateIdle is the initial state: nothing buffered, nothing captionable.
	StateIdle State = iota
	// StateCollecting means the pending buffer holds media awaiting a flush.
	StateCollecting
	// StateAwaitingCaption means an album was dispatched and its caption can
	// still be edited by reply. A pending buffer may be filling at the same
	// time; new media moves the session back to StateCollecting.
	StateAwaitingCaption
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateAwaitingCaption:
		return "awaiting_caption"
	default:
		return "unknown"
	}
}

// Session holds one chat's pending media buffer, its most recently
// dispatched album, and the lifecycle state. The add path and the flush path
// run on different goroutines, so all field access goes through the mutex.
type Session struct {
	chatID int64

	mu           sync.Mutex
	pending      []types.MediaItem
	lastAlbum    *types.Album
	lastActivity time.Time
	state        State
}

func newSession(chatID int64) *Session {
	return &Session{
		chatID:       chatID,
		lastActivity: time.Now(),
		state:        StateIdle,
	}
}

func (s *Session) ChatID() int64 {
	return s.chatID
}

// AddMedia appends an item to the pending buffer, moves the session to
// StateCollecting, and returns the new buffer size.
func (s *Session) AddMedia(item types.MediaItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, item)
	s.state = StateCollecting
	s.lastActivity = time.Now()
	return len(s.pending)
}

func (s *Session) PendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// DrainAtLeast atomically takes the whole pending buffer when it holds at
// least min items, returning the items and the count taken. With fewer than
// min items the buffer is left in place and only its size is returned, so an
// undersized batch keeps accumulating.
func (s *Session) DrainAtLeast(min int) ([]types.MediaItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) < min {
		return nil, len(s.pending)
	}
	items := s.pending
	s.pending = nil
	s.lastActivity = time.Now()
	return items, len(items)
}

// SetLastAlbum records a dispatched album as the one eligible for caption
// editing and moves the session to StateAwaitingCaption.
func (s *Session) SetLastAlbum(a *types.Album) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAlbum = a
	s.state = StateAwaitingCaption
	s.lastActivity = time.Now()
}

func (s *Session) LastAlbum() *types.Album {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAlbum
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Touch refreshes the activity timestamp so the reaper keeps the session.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Expired reports whether the session has seen no activity for the timeout.
func (s *Session) Expired(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActivity) > timeout
}
