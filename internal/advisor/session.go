// Package advisor hosts the language-model collaborators: personalized
// plan recommendation with multi-turn sessions, and peer matching. Both
// run outside the scoring engine, never hold a user-record lock, and are
// bounded by the caller's context.
package advisor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhihang-app/zhihang/internal/llm"
)

// Turn is one exchange in a plan-recommendation conversation.
type Turn struct {
	Role    llm.Role `json:"role"`
	Content string   `json:"content"`
}

// Session is the conversation state of one user's plan dialogue. The base
// prompt (profile + major-scoped catalogs) is frozen when the session
// starts; follow-up demands only append turns.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BasePrompt string    `json:"-"`
	Turns      []Turn    `json:"turns"`
	CreatedAt  time.Time `json:"created_at"`
}

// SessionStore keeps plan sessions keyed by user id. The lifetime is
// caller-managed: sessions live until Reset or process exit.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for userID, reporting whether one exists.
func (s *SessionStore) Get(userID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Create starts a fresh session for userID, replacing any existing one.
func (s *SessionStore) Create(userID, basePrompt string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		BasePrompt: basePrompt,
		CreatedAt:  time.Now(),
	}
	s.sessions[userID] = sess
	return sess
}

// Reset drops the session for userID, if any.
func (s *SessionStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
