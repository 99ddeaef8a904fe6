package middleware

import (
	"strconv"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route. Unmatched
// paths are grouped under "unmatched" to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
