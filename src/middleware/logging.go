package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/logging"
)

// LoggingMiddleware logs every request with structured fields. Failed
// requests carry the kind of the error that was rendered.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		status := c.Writer.Status()
		logger := logging.ComponentLogger("http", GetRequestID(c))

		// Pick level based on status
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		// Add fields
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP())

		// Add query if present
		if query != "" {
			event.Str("query", query)
		}

		// Add error kind if present
		if last := c.Errors.Last(); last != nil {
			event.Str("error_kind", apperror.KindOf(last.Err).String())
		}

		// Log message based on status
		switch {
		case status >= 500:
			event.Msg("server error")
		case status >= 400:
			event.Msg("client error")
		default:
			event.Msg("request")
		}
	}
}
