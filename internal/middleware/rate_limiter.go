package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Per-IP fixed-window limiter ───────────────────────────────────────────────

// rateEntry tracks request counts per IP within the current window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type ipLimiter struct {
	name    string
	limit   int
	window  time.Duration
	message string

	mu      sync.Mutex
	entries map[string]*rateEntry
}

var (
	limiters   []*ipLimiter
	limitersMu sync.Mutex
)

func newIPLimiter(name string, limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		message: message,
		entries: make(map[string]*rateEntry),
	}
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	return l
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		entry, exists := l.entries[ip]
		if !exists {
			entry = &rateEntry{}
			l.entries[ip] = entry
		}
		l.mu.Unlock()

		entry.mu.Lock()
		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(l.window)
		}
		entry.count++
		over, windowEnd := entry.count > l.limit, entry.windowEnd
		entry.mu.Unlock()

		if over {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// RateLimiter returns the general API limiter: limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter("api", limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// HeavyRateLimiter guards endpoints that hit upstream feeds or render PDFs:
// 20 requests per minute per IP.
func HeavyRateLimiter() gin.HandlerFunc {
	return newIPLimiter("heavy", 20, time.Minute,
		"Demasiadas solicitudes de informes. Intente en 1 minuto.").handler()
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries from every limiter so IPs that never
// return do not accumulate.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purgeOnce(time.Now())
	}
}

func purgeOnce(now time.Time) {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	for _, l := range limiters {
		l.mu.Lock()
		purged := 0
		for ip, entry := range l.entries {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(l.entries, ip)
				purged++
			}
			entry.mu.Unlock()
		}
		remaining := len(l.entries)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Str("limiter", l.name).
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
