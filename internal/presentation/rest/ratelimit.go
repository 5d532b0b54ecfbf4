package rest

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

// ClientRateLimiter keeps one token bucket per client address.
type ClientRateLimiter struct {
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
	mu      sync.Mutex
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter allows each client rps requests per second with the given burst.
func NewClientRateLimiter(rps float64, burst int) *ClientRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientRateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the client may make a request now, consuming a token if so.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[client]
	if !ok {
		l.evictIdle(now)
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *ClientRateLimiter) evictIdle(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.lastSeen) > clientIdleTTL {
			delete(l.clients, key)
		}
	}
}

// Middleware rejects over-limit requests with 429. Clients are keyed by remote IP, so it
// belongs after middleware.RealIP.
func (l *ClientRateLimiter) Middleware(next http.Handler) http.Handler {
	retryAfter := "1"
	if l.limit > 0 && l.limit < 1 {
		retryAfter = strconv.Itoa(int(1/float64(l.limit)) + 1)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", retryAfter)
			respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
