package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewClientLimiter(60, 2, WithClientLimiterNowFunc(func() time.Time { return now }))

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "clients are independent")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refilled after a second at 60/min")
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestClientLimiter_ZeroBurstAllowsOne(t *testing.T) {
	t.Parallel()

	l := NewClientLimiter(1, 0)
	assert.True(t, l.Allow("a"))
}

func TestClientLimiter_PrunesIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewClientLimiter(60, 1, WithClientLimiterNowFunc(func() time.Time { return now }))

	for i := range maxClients {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	require.Equal(t, maxClients, l.Len())

	now = now.Add(time.Hour)
	l.Allow("newcomer")
	assert.Equal(t, 1, l.Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	l := NewClientLimiter(1, 1)

	e := echo.New()
	e.Use(RateLimit(l, func(c echo.Context) error {
		return c.String(http.StatusTooManyRequests, "slow down")
	}, http.MethodPost))
	e.GET("/login", func(c echo.Context) error { return c.String(http.StatusOK, "form") })
	e.POST("/login", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/login", http.NoBody)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet).Code, "GET is not throttled")
}

func TestClientLimiter_EvictsOldestWhenFull(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewClientLimiter(60, 1, WithClientLimiterNowFunc(func() time.Time { return now }))

	for i := range maxClients {
		now = now.Add(time.Millisecond)
		l.Allow(fmt.Sprintf("client-%d", i))
	}

	l.Allow("newcomer")
	assert.Equal(t, maxClients, l.Len())
	assert.True(t, l.Allow("client-0"), "oldest client was evicted and starts a fresh bucket")
}

func TestClientIPExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		xff        string
		want       string
	}{
		{
			name:       "no proxies ignores forwarded header",
			remoteAddr: "192.0.2.10:5555",
			xff:        "203.0.113.7",
			want:       "192.0.2.10",
		},
		{
			name:       "trusted proxy forwards client address",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:5555",
			xff:        "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "untrusted peer cannot claim an address",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "192.0.2.10:5555",
			xff:        "203.0.113.7",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			extract, err := ClientIPExtractor(tt.trusted)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/login", http.NoBody)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set(echo.HeaderXForwardedFor, tt.xff)
			assert.Equal(t, tt.want, extract(req))
		})
	}
}

func TestClientIPExtractor_InvalidCIDR(t *testing.T) {
	t.Parallel()

	_, err := ClientIPExtractor([]string{"not-a-cidr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing trusted proxy")
}

func TestRateLimitMiddleware_RotatingForwardedFor(t *testing.T) {
	t.Parallel()

	l := NewClientLimiter(1, 5)
	extract, err := ClientIPExtractor(nil)
	require.NoError(t, err)

	e := echo.New()
	e.IPExtractor = extract
	e.Use(RateLimit(l, func(c echo.Context) error {
		return c.String(http.StatusTooManyRequests, "slow down")
	}, http.MethodPost))
	e.POST("/login", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	limited := 0
	for i := range 50 {
		req := httptest.NewRequest(http.MethodPost, "/login", http.NoBody)
		req.RemoteAddr = "192.0.2.10:5555"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 45, limited)
	assert.Equal(t, 1, l.Len())
}
