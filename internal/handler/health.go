package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// Health returns a JSON health check response.
// Redis down is unhealthy; an open feed breaker is reported but not fatal
// since every feed has a reference fallback.
func Health(rdb *redis.Client, breakers ...*gobreaker.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		feeds := make(map[string]string, len(breakers))
		for _, cb := range breakers {
			feeds[cb.Name()] = cb.State().String()
		}

		status := http.StatusOK
		if redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"redis": redisStatus,
			"feeds": feeds,
		})
	}
}
