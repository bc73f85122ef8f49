package middleware

import (
	"strings"
	"time"

	"gposync/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per API section. Requests
// outside the gpodder API are labelled by their first path element.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		section := "other"
		if route, ok := CurrentRoute(c); ok {
			section = route.Section.String()
		} else if strings.HasPrefix(path, "/index.php/") {
			section = "nextcloud"
		}
		metrics.RecordRequest(section, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
