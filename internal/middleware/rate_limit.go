package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// SessionHeader identifies an anonymous client session
const SessionHeader = "X-Session-ID"

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimitResult is the outcome of one limiter check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter decides whether a client identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
	Config() RateLimitConfig
}

// RedisLimiter counts requests per fixed window in Redis so the limit holds
// across API replicas
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRedisLimiter creates a new Redis backed limiter
func NewRedisLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		redis:  redisClient,
		config: config,
	}
}

func (rl *RedisLimiter) Config() RateLimitConfig {
	return rl.config
}

// Allow increments the counter for key and reports whether it is within the limit
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return RateLimitResult{}, err
	}

	count := int(incrCmd.Val())
	return RateLimitResult{
		Allowed:   count <= rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is an in-process token bucket per key, used when Redis is
// not configured
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	config  RateLimitConfig
	every   rate.Limit
}

// NewLocalLimiter creates a limiter that refills Limit tokens per Window
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		config:  config,
		every:   rate.Every(config.Window / time.Duration(config.Limit)),
	}
}

func (l *LocalLimiter) Config() RateLimitConfig {
	return l.config
}

// Allow takes a token for key if one is available
func (l *LocalLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.evictIdle(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.every, l.config.Limit)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	remaining := int(entry.limiter.TokensAt(now))
	reset := now
	if remaining < l.config.Limit {
		reset = now.Add(time.Duration(float64(time.Second) / float64(l.every)))
	}

	return RateLimitResult{
		Allowed:   allowed,
		Remaining: max(remaining, 0),
		Reset:     reset,
	}, nil
}

// evictIdle drops buckets that have been full for a whole window
func (l *LocalLimiter) evictIdle(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.config.Window {
			delete(l.entries, key)
		}
	}
}

// RateLimit returns a Gin middleware that enforces limiter per session,
// falling back to the client IP when no session header is sent
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	cfg := limiter.Config()

	return func(c *gin.Context) {
		key := c.GetHeader(SessionHeader)
		if key == "" {
			key = c.ClientIP()
		}

		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))

		if !result.Allowed {
			metrics.RateLimitRejections.Inc()
			retryAfter := int(time.Until(result.Reset).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Success: false,
				Error:   fmt.Sprintf("rate limit of %d requests per %v exceeded", cfg.Limit, cfg.Window),
				Code:    types.ErrCodeTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
