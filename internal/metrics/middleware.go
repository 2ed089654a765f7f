package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// InstrumentHandler records request duration labelled by the matched route template.
func InstrumentHandler(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
}
