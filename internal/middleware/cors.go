package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Authorization, Content-Type, X-Request-Id"
)

// CORS applies the cors_allowlist from the instance config. An empty
// allowlist opens the API to any origin; otherwise only listed origins
// get CORS headers and everything else is left without them.
func CORS(allowlist []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, origin := range allowlist {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		if grant := resolveOrigin(allowed, c.GetHeader("Origin")); grant != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", grant)
			header.Set("Access-Control-Allow-Methods", corsMethods)
			header.Set("Access-Control-Allow-Headers", corsHeaders)
			if grant != "*" {
				header.Set("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func resolveOrigin(allowed map[string]struct{}, origin string) string {
	if len(allowed) == 0 {
		return "*"
	}
	if _, ok := allowed[origin]; ok {
		return origin
	}
	return ""
}
