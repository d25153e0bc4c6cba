package middlewares

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddlewares allows any localhost origin on any port, plus extra
// origins from CORS_EXTRA_ORIGINS (comma separated).
func CORSMiddlewares() gin.HandlerFunc {
	extra := map[string]bool{}
	for _, origin := range strings.Split(os.Getenv("CORS_EXTRA_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			extra[origin] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (isLocalhostOrigin(origin) || extra[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, Sec-WebSocket-Protocol, Sec-WebSocket-Version, Sec-WebSocket-Key, Upgrade")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// isLocalhostOrigin matches http(s)://localhost[:port] and
// http(s)://127.0.0.1[:port].
func isLocalhostOrigin(origin string) bool {
	rest := origin
	switch {
	case strings.HasPrefix(rest, "http://"):
		rest = strings.TrimPrefix(rest, "http://")
	case strings.HasPrefix(rest, "https://"):
		rest = strings.TrimPrefix(rest, "https://")
	default:
		return false
	}

	host := rest
	if idx := strings.Index(rest, ":"); idx >= 0 {
		host = rest[:idx]
		port := rest[idx+1:]
		if port == "" {
			return false
		}
		for _, ch := range port {
			if ch < '0' || ch > '9' {
				return false
			}
		}
	}
	return host == "localhost" || host == "127.0.0.1"
}
