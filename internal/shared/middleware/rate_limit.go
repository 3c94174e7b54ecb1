package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitScript is an atomic sliding-window counter over a sorted set.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('PEXPIRE', key, window)
    return {1, limit - count - 1}
end
return {0, 0}
`)

var tooManyRequests = sharedError.ErrorResponse{
	Status:  http.StatusTooManyRequests,
	Code:    "ERROR-005", // RATE_LIMITED
	Message: "มีการร้องขอมากเกินไป กรุณาลองใหม่ภายหลัง",
}

// RateLimit limits requests per client IP within a one-minute window.
// A nil client or a Redis failure lets the request through.
func RateLimit(client redis.Scripter, keyPrefix string, perMinute int) gin.HandlerFunc {
	window := time.Minute

	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		// One sorted set per client IP, pruned to the window by the script
		key := keyPrefix + c.ClientIP()
		now := time.Now().UnixMilli()

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key},
			perMinute, window.Milliseconds(), now,
		).Int64Slice()
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		// result is {allowed, remaining}
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result[1], 10))

		if result[0] != 1 {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(tooManyRequests.Status, tooManyRequests)
			return
		}

		c.Next()
	}
}
