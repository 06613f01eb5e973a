package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig controls the token bucket applied to the public auth
// endpoints. Capacity tokens refill one per Interval.
type RateLimitConfig struct {
	Capacity int
	Interval time.Duration
}

// bucket state lives in Redis so multiple instances share one budget;
// the script runs atomically per key
var limiterScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local refills = math.floor(elapsed / interval_ms)
		if refills > 0 then
			tokens = math.min(capacity, tokens + refills)
			last_refill = last_refill + (refills * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

// RateLimit applies a per-client-IP token bucket. A nil Redis client
// disables the limiter; a Redis outage fails open.
func RateLimit(cfg RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil || cfg.Capacity <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	ttl := int64(cfg.Interval/time.Second) * int64(cfg.Capacity) * 2
	if ttl < 60 {
		ttl = 60
	}

	return func(c *gin.Context) {
		key := "ratelimit:auth:" + c.ClientIP()

		vals, err := limiterScript.Run(c.Request.Context(), rdb, []string{key},
			time.Now().UnixMilli(),
			cfg.Capacity,
			cfg.Interval.Milliseconds(),
			ttl,
		).Int64Slice()
		if err != nil || len(vals) != 2 {
			c.Next()
			return
		}

		if vals[0] != 1 {
			retrySecs := (vals[1] + 999) / 1000
			c.Header("Retry-After", strconv.FormatInt(retrySecs, 10))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
