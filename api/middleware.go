package api

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with its status and latency. Server
// errors are logged at error level.
func RequestLogger(l i.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		switch {
		case status >= 500:
			l.Error(line)
		case status >= 400:
			l.Warning(line)
		default:
			l.Info(line)
		}
	}
}
