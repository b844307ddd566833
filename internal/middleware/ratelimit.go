package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a fixed-window, per-client-IP limiter. It expects the
// client address in r.RemoteAddr, which chi's RealIP middleware provides.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string]*clientInfo
	limit    int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter allows limit requests per window for each client. A limit
// of zero disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string]*clientInfo),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !l.Allow(ip) {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	info, exists := l.requests[ip]
	if !exists || now.After(info.resetAt) {
		l.requests[ip] = &clientInfo{
			count:   1,
			resetAt: now.Add(l.window),
		}
		return true
	}

	if info.count >= l.limit {
		return false
	}

	info.count++
	return true
}

// StartCleanup drops expired entries every interval until Close is called.
func (l *RateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.cleanup()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *RateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, info := range l.requests {
		if now.After(info.resetAt) {
			delete(l.requests, ip)
		}
	}
}

func (l *RateLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
