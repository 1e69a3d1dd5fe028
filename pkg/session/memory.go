package session

import (
	"maps"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// DefaultCookie is the cookie name carrying the session token.
const DefaultCookie = "session_id"

// Memory is an in-memory session store keyed by a token cookie. It satisfies
// routekit.SessionStore: SessionParam bindings read individual values from
// the session identified by the request's token.
type Memory struct {
	mu       sync.RWMutex
	cookie   string
	sessions map[string]map[string]any
}

// NewMemory creates an empty store reading tokens from the given cookie
// name, or DefaultCookie when empty.
func NewMemory(cookieName string) *Memory {
	if cookieName == "" {
		cookieName = DefaultCookie
	}
	return &Memory{
		cookie:   cookieName,
		sessions: make(map[string]map[string]any),
	}
}

// Get returns the value stored under key in the request's session.
func (m *Memory) Get(r *http.Request, key string) (any, bool) {
	c, err := r.Cookie(m.cookie)
	if err != nil {
		return nil, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	values, ok := m.sessions[c.Value]
	if !ok {
		return nil, false
	}
	v, ok := values[key]
	return v, ok
}

// Start creates a new session with the given values and returns its token.
// Callers set the token on the client as the store's cookie.
func (m *Memory) Start(values map[string]any) string {
	token := uuid.NewString()

	copied := make(map[string]any, len(values))
	maps.Copy(copied, values)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = copied
	return token
}

// Set stores a value in an existing session. Unknown tokens are ignored.
func (m *Memory) Set(token, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if values, ok := m.sessions[token]; ok {
		values[key] = value
	}
}

// End removes a session.
func (m *Memory) End(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
