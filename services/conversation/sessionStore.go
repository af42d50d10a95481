package conversation

import (
	"sync"
	"time"

	"laohotel/models"
)

type sessionEntry struct {
	state    models.ConversationState
	draft    *models.BookingDraft
	lastSeen time.Time
}

// SessionStore keeps each session's booking state in memory. A session that is unknown,
// cleared or idle past the TTL reads as NORMAL with no draft.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	idleTTL  time.Duration
	now      func() time.Time
}

// NewSessionStore evicts sessions idle longer than idleTTL; zero keeps them forever.
func NewSessionStore(idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (s *SessionStore) expired(e *sessionEntry) bool {
	return s.idleTTL > 0 && s.now().Sub(e.lastSeen) > s.idleTTL
}

// lookup returns the live entry for sessionID and marks it as seen.
func (s *SessionStore) lookup(sessionID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.expired(e) {
		delete(s.sessions, sessionID)
		return nil
	}
	e.lastSeen = s.now()
	return e
}

func (s *SessionStore) State(sessionID string) models.ConversationState {
	if e := s.lookup(sessionID); e != nil {
		return e.state
	}
	return models.StateNormal
}

// PendingBooking returns a copy of the session's draft, or nil.
func (s *SessionStore) PendingBooking(sessionID string) *models.BookingDraft {
	e := s.lookup(sessionID)
	if e == nil || e.draft == nil {
		return nil
	}
	d := *e.draft
	return &d
}

// SetState records the session's new state. Moving to NORMAL forgets the session and its
// draft. For any other state a non-nil draft replaces the stored one; a nil draft keeps it.
func (s *SessionStore) SetState(sessionID string, state models.ConversationState, draft *models.BookingDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == models.StateNormal {
		delete(s.sessions, sessionID)
		return
	}
	d := models.BookingDraft{}
	if draft != nil {
		d = *draft
	} else if e, ok := s.sessions[sessionID]; ok && !s.expired(e) && e.draft != nil {
		d = *e.draft
	}
	s.sessions[sessionID] = &sessionEntry{state: state, draft: &d, lastSeen: s.now()}
}

// Clear reports whether the session held any state.
func (s *SessionStore) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return !s.expired(e)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
