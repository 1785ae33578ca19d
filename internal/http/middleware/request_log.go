package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request after the handler chain
// has run. 5xx logs at error, 4xx at warn, the rest at info.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := c.Request.Context()

		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		fields = append(fields, ctxutil.GetTraceData(ctx).LogFields()...)
		if sd := ctxutil.GetStaffData(ctx); sd != nil && sd.Username != "" {
			fields = append(fields, "staff", sd.Username)
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, "query", q)
		}
		if last := c.Errors.ByType(gin.ErrorTypePrivate).Last(); last != nil {
			fields = append(fields, "error", last.Error())
		}

		logAt(log, status)("HTTP request", fields...)
	}
}

func logAt(log *logger.Logger, status int) func(string, ...interface{}) {
	switch {
	case status >= 500:
		return log.Error
	case status >= 400:
		return log.Warn
	default:
		return log.Info
	}
}
