package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/apperror"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	corsHeaders = []string{"Content-Type", "X-Request-ID"}
)

// CORS rejects cross-origin requests the policy does not allow with a
// CorsForbidden error and hands the rest to gin-contrib/cors. An origin
// list containing "*" allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	originAllowed := func(origin string) bool {
		if allowAll {
			return true
		}
		_, ok := origins[origin]
		return ok
	}

	cfg := cors.Config{
		AllowMethods: corsMethods,
		AllowHeaders: corsHeaders,
		MaxAge:       12 * time.Hour,
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOriginFunc = originAllowed
	}
	handler := cors.New(cfg)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || sameOrigin(origin, c.Request.Host) {
			c.Next()
			return
		}

		if !originAllowed(origin) {
			abortForbidden(c, "CORS request forbidden: origin not allowed")
			return
		}

		if c.Request.Method == http.MethodOptions {
			if method := c.GetHeader("Access-Control-Request-Method"); method != "" && !contains(corsMethods, method) {
				abortForbidden(c, "CORS request forbidden: invalid request method")
				return
			}
			for _, h := range strings.Split(c.GetHeader("Access-Control-Request-Headers"), ",") {
				h = strings.TrimSpace(h)
				if h != "" && !contains(corsHeaders, h) {
					abortForbidden(c, "CORS request forbidden: header not allowed: "+h)
					return
				}
			}
		}

		handler(c)
	}
}

// sameOrigin matches gin-contrib/cors: a request from the serving host is
// not cross-origin
func sameOrigin(origin, host string) bool {
	return origin == "http://"+host || origin == "https://"+host
}

func abortForbidden(c *gin.Context, msg string) {
	_ = c.Error(apperror.CorsForbidden(msg))
	c.Abort()
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
