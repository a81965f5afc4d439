package middleware

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// maxClients bounds the limiter table. Idle entries are pruned past it and,
// if none are idle, the least recently seen client is evicted.
const maxClients = 10_000

// ClientLimiter throttles requests per client IP with a token bucket.
type ClientLimiter struct {
	perSecond rate.Limit
	burst     int
	idle      time.Duration
	nowFunc   func() time.Time

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiterOption configures a ClientLimiter.
type ClientLimiterOption func(*ClientLimiter)

// WithClientLimiterNowFunc overrides the time function for testing.
func WithClientLimiterNowFunc(f func() time.Time) ClientLimiterOption {
	return func(l *ClientLimiter) {
		l.nowFunc = f
	}
}

// NewClientLimiter allows perMinute sustained requests per client with the
// given burst.
func NewClientLimiter(perMinute float64, burst int, opts ...ClientLimiterOption) *ClientLimiter {
	l := &ClientLimiter{
		perSecond: rate.Limit(perMinute / 60),
		burst:     max(burst, 1),
		idle:      10 * time.Minute,
		nowFunc:   time.Now,
		clients:   make(map[string]*clientBucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether client may make a request now, consuming a token if so.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()

	b, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxClients {
			l.prune(now)
		}
		if len(l.clients) >= maxClients {
			l.evictOldest()
		}
		b = &clientBucket{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *ClientLimiter) prune(now time.Time) {
	for id, b := range l.clients {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.clients, id)
		}
	}
}

func (l *ClientLimiter) evictOldest() {
	var (
		oldest   string
		oldestAt time.Time
	)
	for id, b := range l.clients {
		if oldest == "" || b.lastSeen.Before(oldestAt) {
			oldest, oldestAt = id, b.lastSeen
		}
	}
	delete(l.clients, oldest)
}

// ClientIPExtractor returns the extractor that decides which address
// c.RealIP reports. With no trusted proxies the socket peer address is used
// and X-Forwarded-For is ignored. Otherwise X-Forwarded-For is honoured only
// for hops inside the given CIDR ranges.
func ClientIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("parsing trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

// RateLimit returns Echo middleware that calls onLimit instead of the handler
// once a client's budget is spent. Only the methods listed are throttled;
// an empty list throttles every request.
func RateLimit(l *ClientLimiter, onLimit echo.HandlerFunc, methods ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !throttled(c.Request().Method, methods) {
				return next(c)
			}
			if !l.Allow(c.RealIP()) {
				return onLimit(c)
			}
			return next(c)
		}
	}
}

func throttled(method string, methods []string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
