package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	MessagesPerMinute int // Max chat messages per client per minute
	BurstSize         int // Allow burst of N requests
	MaxClients        int // Bound on tracked clients (LRU evicted beyond this)
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket
func NewTokenBucket(maxTokens float64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request can proceed and consumes a token if so
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	tb.tokens = min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// ClientRateLimiter manages per-client token buckets. Buckets live in an LRU
// cache so the table stays bounded under client churn.
type ClientRateLimiter struct {
	config  RateLimiterConfig
	buckets *lru.Cache
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewClientRateLimiter creates a rate limiter keyed by client IP.
func NewClientRateLimiter(config RateLimiterConfig, logger *zap.Logger) (*ClientRateLimiter, error) {
	if config.MaxClients <= 0 {
		config.MaxClients = 1024
	}
	cache, err := lru.New(config.MaxClients)
	if err != nil {
		return nil, err
	}
	return &ClientRateLimiter{
		config:  config,
		buckets: cache,
		logger:  logger,
	}, nil
}

func (rl *ClientRateLimiter) bucketFor(clientIP string) *TokenBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cached, ok := rl.buckets.Get(clientIP); ok {
		return cached.(*TokenBucket)
	}
	bucket := NewTokenBucket(
		float64(rl.config.BurstSize),
		float64(rl.config.MessagesPerMinute)/60.0,
	)
	rl.buckets.Add(clientIP, bucket)
	return bucket
}

// Limit returns a gin middleware enforcing the per-client message rate.
func (rl *ClientRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !rl.bucketFor(clientIP).Allow() {
			rl.logger.Warn("Rate limit exceeded", zap.String("client_ip", clientIP))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Muitas mensagens em pouco tempo. Aguarde um momento e tente novamente.",
			})
			return
		}
		c.Next()
	}
}
