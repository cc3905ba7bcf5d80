package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	apperrors "gudlft/pkg/errors"
	httputil "gudlft/pkg/http"
	"gudlft/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	ClubHeader = "X-Club"

	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute
)

// KeyExtractor picks the bucket a request is counted against.
type KeyExtractor func(r *http.Request) string

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter holds one token bucket per key and prunes idle buckets
// once the map grows past cleanupThreshold.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	keyFunc KeyExtractor
	log     *logger.Logger
}

// NewKeyedRateLimiter allows requests per window with the given burst for
// every key.
func NewKeyedRateLimiter(requests int, window time.Duration, burst int, keyFunc KeyExtractor, log *logger.Logger) *KeyedRateLimiter {
	if keyFunc == nil {
		keyFunc = ClubOrIPKey
	}
	return &KeyedRateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   burst,
		keyFunc: keyFunc,
		log:     log,
	}
}

func (l *KeyedRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.entries) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, k)
			}
		}
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (l *KeyedRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}
	return l.limiterFor(key).Allow()
}

// RateLimit only counts the methods that change state.
func RateLimit(limiter *KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := limiter.keyFunc(r)
			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"key", key,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.RateLimited("Rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClubOrIPKey counts a request against the X-Club header when present,
// otherwise against the client address.
func ClubOrIPKey(r *http.Request) string {
	if club := r.Header.Get(ClubHeader); club != "" {
		return "club:" + club
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
