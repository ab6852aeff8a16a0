package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Vary":                             "Origin",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Headers":     "Content-Type, Authorization",
	"Access-Control-Allow-Methods":     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	"Access-Control-Max-Age":           "600",
}

// CORSMiddleware reflects allowed origins. An empty list allows any origin.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[o] = true
	}
	permitted := func(origin string) bool {
		return origin != "" && (len(origins) == 0 || origins[origin])
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); permitted(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				h.Set(k, v)
			}
		}

		// pre-flight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
