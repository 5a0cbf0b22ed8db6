// Package session holds the per-login session context for the dashboard.
//
// The original design kept login state, the active shop, and cached insights
// in process-wide globals; here each session is an explicit object created at
// login, looked up per request, and removed at logout. Nothing is shared
// across sessions and nothing survives a process restart.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

// Session is one logged-in shop's context. Insights are the session-scoped
// ephemeral strategist results: discarded with the session.
type Session struct {
	Token       string
	ShopURL     string
	AccessToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time

	mu       sync.Mutex
	insights *domain.InsightResponse
}

// StoreInsights caches the latest strategist response in this session.
func (s *Session) StoreInsights(r *domain.InsightResponse) {
	s.mu.Lock()
	s.insights = r
	s.mu.Unlock()
}

// Insights returns the cached strategist response, or nil.
func (s *Session) Insights() *domain.InsightResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insights
}

// Manager owns the live sessions, keyed by opaque token.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	cookieName string
	maxAge     time.Duration
}

// NewManager creates a session manager from configuration.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		cookieName: cfg.CookieName,
		maxAge:     time.Duration(cfg.MaxAge) * time.Second,
	}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Create opens a session for the shop and returns it.
func (m *Manager) Create(shop *domain.Shop) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("session: generate token: %w", err)
	}
	now := time.Now()
	s := &Session{
		Token:       token,
		ShopURL:     shop.ShopURL,
		AccessToken: shop.AccessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.maxAge),
	}
	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session for the token, treating expired sessions as absent.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		m.Delete(token)
		return nil, false
	}
	return s, true
}

// Delete removes a session; insights cached on it go with it.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// FromRequest resolves the session from the request cookie.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, false
	}
	return m.Get(c.Value)
}

// SetCookie writes the session cookie on a login/register response.
func (m *Manager) SetCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on logout.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
