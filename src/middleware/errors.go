package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/logging"
)

// ErrorRenderer turns the last error attached to the context into the
// client response. Handlers call c.Error and abort without writing.
func ErrorRenderer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := apperror.Classify(err)

		logger := logging.ComponentLogger("http", GetRequestID(c))
		logger.Debug().
			Int("status", status).
			Str("kind", apperror.KindOf(err).String()).
			Msg("error rendered")

		c.String(status, msg)
	}
}

// NoRouteHandler reports unknown routes through ErrorRenderer
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
		c.Abort()
	}
}
