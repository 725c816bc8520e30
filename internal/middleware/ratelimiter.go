package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Limit — окно фиксированной длины на ключ (операция + IP): INCR,
// EXPIRE на первом запросе в окне. Redis недоступен — пропускаем всех,
// лимитер не должен ронять вход.
func (rl *RateLimiter) Limit(action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", action, c.ClientIP())

		count, err := rl.rdb.Incr(c, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.rdb.TTL(c, key).Result()
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				// Ключ без TTL (EXPIRE не прошел) — время не обещаем
				retryAfter = 0
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}
