// Package chatdesk implements the backend for a single-business booking and
// chat widget: per-session conversation state, the completion-service
// boundary, and lead intake.
package chatdesk

import (
	"sync"
	"time"
)

// Session holds the ordered conversation history for one chat thread. The
// store owns all sessions; callers never retain one across turns.
type Session struct {
	ID      string
	history *MessageList

	// turnMu serializes chat turns on this session. The manager holds it for
	// the whole append-complete-append cycle so two in-flight turns on the
	// same session cannot interleave their appends.
	turnMu sync.Mutex

	lastActive time.Time
}

// History returns a snapshot of the session's message history, in order.
func (s *Session) History() []Message {
	return s.history.All()
}

// Len returns the number of messages in the session's history.
func (s *Session) Len() int {
	return s.history.Len()
}

// SessionStore maps session ids to their conversation histories. Sessions are
// created lazily on first reference and live for the process lifetime, bounded
// by maxSessions: when the map is full the least recently active session is
// evicted to make room.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	systemPrompt string
	maxSessions  int
	now          func() time.Time
}

// NewSessionStore creates a store that seeds every new session with
// systemPrompt as its first message. maxSessions <= 0 disables eviction.
func NewSessionStore(systemPrompt string, maxSessions int) *SessionStore {
	return &SessionStore{
		sessions:     make(map[string]*Session),
		systemPrompt: systemPrompt,
		maxSessions:  maxSessions,
		now:          time.Now,
	}
}

// GetOrCreate returns the session for id, creating it with a single system
// message when the id has not been seen before.
func (st *SessionStore) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if sess, ok := st.sessions[id]; ok {
		sess.lastActive = st.now()
		return sess
	}

	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		st.evictOldestLocked()
	}

	sess := &Session{
		ID:         id,
		history:    NewMessageList(SystemMessage(st.systemPrompt)),
		lastActive: st.now(),
	}
	st.sessions[id] = sess
	return sess
}

// Append adds a message to the named session's history. The session must
// already exist; ordering of appends is the caller's responsibility.
func (st *SessionStore) Append(id string, msg Message) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.history.Add(msg)
	sess.lastActive = st.now()
	return nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// evictOldestLocked drops the least recently active session. Sessions with a
// turn in flight are skipped so an active conversation is never cut off.
// Caller must hold st.mu.
func (st *SessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range st.sessions {
		if !sess.turnMu.TryLock() {
			continue
		}
		sess.turnMu.Unlock()
		if oldestID == "" || sess.lastActive.Before(oldest) {
			oldestID = id
			oldest = sess.lastActive
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
	}
}
