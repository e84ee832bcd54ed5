package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/medistore/storefront/internal/infrastructure/telemetry"
)

// HTTPMetrics counts requests by method, route pattern and status. Requests
// that matched no route are counted under "unmatched".
func HTTPMetrics(m *telemetry.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(c.Request.Method, route, c.Writer.Status())
	}
}
