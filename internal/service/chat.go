package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"estateportal/internal/model"

	"github.com/google/uuid"
)

// Greeting is the first turn of every assistant session
const Greeting = "Hi! I'm your AI property search assistant. I can help you find the perfect property based on your preferences. What are you looking for today?"

// SessionState is the submission state of a chat session
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateAwaitingReply SessionState = "awaiting_reply"
)

// ErrSubmissionPending is returned when a message is submitted while a reply is outstanding
var ErrSubmissionPending = errors.New("a reply is still pending for this session")

// ChatSession holds the turn history of one assistant conversation over a fixed set of listings
type ChatSession struct {
	mu         sync.Mutex
	id         string
	listings   []model.Property
	turns      []model.ChatTurn
	state      SessionState
	lastActive time.Time
}

// NewChatSession starts a conversation with the greeting as its only turn
func NewChatSession(id string, listings []model.Property) *ChatSession {
	if listings == nil {
		listings = []model.Property{}
	}
	return &ChatSession{
		id:       id,
		listings: listings,
		turns: []model.ChatTurn{
			{Role: model.RoleAssistant, Content: Greeting},
		},
		state:      StateIdle,
		lastActive: time.Now(),
	}
}

// ID returns the session identifier
func (s *ChatSession) ID() string {
	return s.id
}

// Submit appends the user's message, asks the completer for a reply and appends it.
// On failure the user turn stays, no assistant turn is added and the error is returned.
func (s *ChatSession) Submit(ctx context.Context, completer Completer, text string) (*model.ChatTurn, error) {
	s.mu.Lock()
	if s.state == StateAwaitingReply {
		s.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.mu.Unlock()
		return nil, inputError("Message is required")
	}
	s.turns = append(s.turns, model.ChatTurn{Role: model.RoleUser, Content: text})
	s.state = StateAwaitingReply
	s.lastActive = time.Now()
	listings := s.listings
	s.mu.Unlock()

	matches := FilterProperties(listings, text)
	prompt := BuildSearchPrompt(text, matches)
	reply, err := completer.Complete(ctx, prompt, map[string]any{
		"userQuery":  text,
		"properties": firstN(matches, maxPromptProperties),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.lastActive = time.Now()
	if err != nil {
		return nil, err
	}

	suggested := append([]model.Property(nil), firstN(matches, maxSuggestedProperties)...)
	turn := model.ChatTurn{
		Role:                model.RoleAssistant,
		Content:             reply,
		SuggestedProperties: suggested,
	}
	s.turns = append(s.turns, turn)
	return &turn, nil
}

// Snapshot returns a copy of the session for rendering
func (s *ChatSession) Snapshot() model.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]model.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return model.SessionResponse{
		ID:       s.id,
		State:    string(s.state),
		Turns:    turns,
		Listings: len(s.listings),
	}
}

// expired reports whether the session has been idle longer than maxIdle.
// A session waiting on a reply never expires.
func (s *ChatSession) expired(now time.Time, maxIdle time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateAwaitingReply && now.Sub(s.lastActive) > maxIdle
}

// SessionStore keeps open chat sessions in memory, keyed by ID
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*ChatSession)}
}

// Create opens a new session over the given listings
func (st *SessionStore) Create(listings []model.Property) *ChatSession {
	session := NewChatSession(uuid.NewString(), listings)
	st.mu.Lock()
	st.sessions[session.id] = session
	st.mu.Unlock()
	return session
}

// Get looks up an open session
func (st *SessionStore) Get(id string) (*ChatSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

// Delete closes a session. It reports whether the session was open.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of open sessions
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune closes sessions idle for longer than maxIdle and returns how many were removed.
// Sessions with a reply outstanding are kept.
func (st *SessionStore) Prune(now time.Time, maxIdle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, session := range st.sessions {
		if session.expired(now, maxIdle) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
