package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures one upstream call.
type Timer struct {
	start    time.Time
	metrics  *Metrics
	endpoint string
}

// NewTimer starts a timer for an upstream endpoint.
func NewTimer(metrics *Metrics, endpoint string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, endpoint: endpoint}
}

// Stop records the elapsed time with the final status.
func (t *Timer) Stop(status string) {
	t.metrics.RecordUpstreamCall(t.endpoint, status, time.Since(t.start))
}
