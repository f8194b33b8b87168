// Package session provides the server-side session table and its cookie
// codec. The cookie carries only an opaque session id, signed with the
// configured secret; user identity lives in the in-memory table and is
// dropped on logout or expiry.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// CookieName is the name of the session cookie.
const CookieName = "musicbox_session"

// DefaultTTL bounds a session's lifetime.
const DefaultTTL = 24 * time.Hour

// Session is the server-side state for one authenticated client.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store maps session ids to sessions and reads/writes the signed cookie.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cookies *sessions.CookieStore
	ttl     time.Duration
}

// NewStore creates a session store signing cookies with secret. A zero ttl
// falls back to DefaultTTL.
func NewStore(secret []byte, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cookies := sessions.NewCookieStore(secret)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   false, // set behind TLS termination if needed
	}

	return &Store{
		sessions: make(map[string]*Session),
		cookies:  cookies,
		ttl:      ttl,
	}
}

// Create issues a new session for the user and sets the signed cookie on w.
func (s *Store) Create(w http.ResponseWriter, r *http.Request, userID int64, username string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	// Get returns a fresh cookie session when the request carries none or an
	// invalid one; the decode error is irrelevant here.
	cookie, _ := s.cookies.Get(r, CookieName)
	cookie.Values["sid"] = sess.ID
	if err := cookie.Save(r, w); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session attached to the request, or nil when the cookie is
// absent, tampered with, unknown, or expired. Expired sessions are reaped on
// access.
func (s *Store) Get(r *http.Request) *Session {
	cookie, err := s.cookies.Get(r, CookieName)
	if err != nil {
		return nil
	}

	sid, ok := cookie.Values["sid"].(string)
	if !ok {
		return nil
	}

	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
		return nil
	}

	return sess
}

// Destroy invalidates the request's session, if any, and clears the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := s.cookies.Get(r, CookieName)
	if err == nil {
		if sid, ok := cookie.Values["sid"].(string); ok {
			s.mu.Lock()
			delete(s.sessions, sid)
			s.mu.Unlock()
		}
	}

	delete(cookie.Values, "sid")
	cookie.Options.MaxAge = -1
	return cookie.Save(r, w)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
