package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 32))

// roundTrip copies response cookies onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNewSessions_ShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSessions([]byte("short"), "s", time.Hour, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestSessions_SetUserAndRead(t *testing.T) {
	t.Parallel()

	s, err := NewSessions(testSecret, "devlog_session", time.Hour, true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", http.NoBody)
	require.NoError(t, s.SetUser(rec, req, "u-42"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "devlog_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	id, ok := s.UserID(roundTrip(rec))
	assert.True(t, ok)
	assert.Equal(t, "u-42", id)
}

func TestSessions_NoCookie(t *testing.T) {
	t.Parallel()

	s, err := NewSessions(testSecret, "devlog_session", time.Hour, false)
	require.NoError(t, err)

	_, ok := s.UserID(httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.False(t, ok)
}

func TestSessions_ForeignSecretRejected(t *testing.T) {
	t.Parallel()

	a, err := NewSessions(testSecret, "devlog_session", time.Hour, false)
	require.NoError(t, err)
	b, err := NewSessions([]byte(strings.Repeat("z", 32)), "devlog_session", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, a.SetUser(rec, httptest.NewRequest(http.MethodPost, "/", http.NoBody), "u-1"))

	_, ok := b.UserID(roundTrip(rec))
	assert.False(t, ok)
}

func TestSessions_Clear(t *testing.T) {
	t.Parallel()

	s, err := NewSessions(testSecret, "devlog_session", time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, s.SetUser(rec, httptest.NewRequest(http.MethodPost, "/", http.NoBody), "u-1"))

	clearRec := httptest.NewRecorder()
	require.NoError(t, s.Clear(clearRec, roundTrip(rec)))

	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}
