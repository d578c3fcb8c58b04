package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ca-la/bin-sub002/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window rate limiter ─────────────────────────────────────────────────

// rateEntry tracks request counts per IP for one limiter.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// rateStore is the per-limiter IP table. Each RateLimiter call gets its own
// store so a strict limiter on expensive routes does not share counts with
// the global one.
type rateStore struct {
	name    string
	mu      sync.Mutex
	entries map[string]*rateEntry
}

var (
	stores   []*rateStore
	storesMu sync.Mutex
)

func newRateStore(name string) *rateStore {
	s := &rateStore{name: name, entries: make(map[string]*rateEntry)}
	storesMu.Lock()
	stores = append(stores, s)
	storesMu.Unlock()
	return s
}

func (s *rateStore) entry(ip string) *rateEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ip]
	if !ok {
		e = &rateEntry{}
		s.entries[ip] = e
	}
	return e
}

// RateLimiter allows limit requests per window per client IP.
func RateLimiter(name string, limit int, window time.Duration) gin.HandlerFunc {
	store := newRateStore(name)
	return func(c *gin.Context) {
		entry := store.entry(c.ClientIP())

		entry.mu.Lock()
		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}
		entry.count++
		exceeded := entry.count > limit
		retryAfter := int(entry.windowEnd.Sub(now).Seconds()) + 1
		entry.mu.Unlock()

		if exceeded {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, try again shortly"))
			return
		}
		c.Next()
	}
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
		storesMu.Lock()
		current := append([]*rateStore(nil), stores...)
		storesMu.Unlock()

		for _, s := range current {
			if purged, remaining := s.purge(time.Now()); purged > 0 {
				log.Debug().
					Str("limiter", s.name).
					Int("entries_purged", purged).
					Int("entries_remaining", remaining).
					Msg("rate limiter purged")
			}
		}
	}
}

func (s *rateStore) purge(now time.Time) (purged, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, e := range s.entries {
		e.mu.Lock()
		if now.After(e.windowEnd) {
			delete(s.entries, ip)
			purged++
		}
		e.mu.Unlock()
	}
	return purged, len(s.entries)
}
