package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopdash/cache"
)

// Session ties an authenticated user to their shop. The shop and user ids
// travel with the session rather than being read from ambient state, and
// the session owns the view cache, so ending the session drops every cached
// view-model with it.
type Session struct {
	Token     string
	UserID    string
	ShopID    string
	StoreName string
	CreatedAt time.Time
	Views     *cache.ViewCache
}

// Manager keeps active sessions in memory.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a session for the user/shop pair and returns it.
func (m *Manager) Create(userID, shopID, storeName string) *Session {
	s := &Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ShopID:    shopID,
		StoreName: storeName,
		CreatedAt: time.Now(),
		Views:     cache.NewViewCache(),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Lookup resolves a bearer token to its session.
func (m *Manager) Lookup(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	return s, ok
}

// End removes the session, releasing its caches.
func (m *Manager) End(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

const sessionKey = "session"

// Middleware guards routes behind a valid bearer token and stashes the
// session in the request context.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		s, ok := m.Lookup(token)
		if token == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session stored by Middleware.
func SessionFrom(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}
