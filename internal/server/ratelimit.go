package server

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AsgerObel/Hoff/lru"
)

// RateLimitConfig holds rate limiter configuration.
type RateLimitConfig struct {
	RPS   int // requests per second
	Burst int // burst size
}

// maxClients bounds the per-client bucket table. Stale clients fall out via
// LRU eviction instead of a background sweep.
const maxClients = 4096

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

func newTokenBucket(rps, burst int) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(burst),
		maxTokens:  float64(burst),
		refillRate: float64(rps),
		lastRefill: time.Now(),
	}
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// NewRateLimitMiddleware returns a per-client token-bucket rate limiter.
// Client state lives in an LRU cache so the table cannot grow without bound.
func NewRateLimitMiddleware(cfg RateLimitConfig) fiber.Handler {
	clients := lru.New[string, *tokenBucket](maxClients)

	return func(c *fiber.Ctx) error {
		// Probe endpoints are exempt
		path := c.Path()
		if path == "/healthz" || path == "/readyz" || path == "/metrics" {
			return c.Next()
		}

		bucket := clients.GetOrPut(c.IP(), func() *tokenBucket {
			return newTokenBucket(cfg.RPS, cfg.Burst)
		})

		if !bucket.allow() {
			return problemResponse(c, fiber.StatusTooManyRequests,
				"rate_limit_exceeded", "Too Many Requests",
				"Rate limit exceeded. Please try again later.")
		}

		return c.Next()
	}
}
