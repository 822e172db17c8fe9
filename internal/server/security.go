package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/dropgame/internal/logger"
)

// AuthMiddleware validates the ops API key on the routes it wraps.
func AuthMiddleware(apiKey string, trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)

			// Constant time comparison keeps key length and prefix private.
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				failures := guard.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip,
					"failures", failures)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientGuard rate limits ops clients by IP and raises an alert when one
// keeps failing authentication. Idle clients age out of both caches.
type ClientGuard struct {
	mu         sync.Mutex
	limiters   *expirable.LRU[string, *rate.Limiter]
	failedAuth *expirable.LRU[string, int]
	limit      rate.Limit
	burst      int
}

// NewClientGuard allows each client ratePerSec requests with the given burst.
func NewClientGuard(ratePerSec float64, burst int) *ClientGuard {
	return &ClientGuard{
		limiters:   expirable.NewLRU[string, *rate.Limiter](ClientCacheSize, nil, ClientIdleTTL),
		failedAuth: expirable.NewLRU[string, int](ClientCacheSize, nil, FailedAuthWindow),
		limit:      rate.Limit(ratePerSec),
		burst:      burst,
	}
}

// Allow reports whether ip may make another request now.
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	l, ok := g.limiters.Get(ip)
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters.Add(ip, l)
	}
	g.mu.Unlock()
	return l.Allow()
}

// RecordFailedAuth counts a failed authentication from ip and returns the
// count within the window.
func (g *ClientGuard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	n, _ := g.failedAuth.Get(ip)
	n++
	g.failedAuth.Add(ip, n)
	g.mu.Unlock()

	if n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
	return n
}

// RateLimitMiddleware answers 429 to clients over their request rate.
func RateLimitMiddleware(trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !guard.Allow(ip) {
				logger.FromContext(r.Context()).Debug(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}

	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// The rightmost entry is the hop that reached our proxy.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
