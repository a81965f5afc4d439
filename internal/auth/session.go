package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

// Sessions stores the signed-in user ID in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
	name  string
}

// NewSessions creates a cookie-backed session manager. The secret signs the
// cookie and must be at least 32 bytes.
func NewSessions(secret []byte, name string, maxAge time.Duration, secure bool) (*Sessions, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes (got %d)", len(secret))
	}

	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Sessions{store: cs, name: name}, nil
}

// SetUser records userID in the session cookie.
func (s *Sessions) SetUser(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := s.store.Get(r, s.name) // a tampered cookie yields a fresh session
	sess.Values[userIDKey] = userID
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// UserID returns the signed-in user ID, if any.
func (s *Sessions) UserID(r *http.Request) (string, bool) {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return "", false
	}
	id, ok := sess.Values[userIDKey].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
