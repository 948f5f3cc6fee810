package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"session_id":  SessionIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		// Handlers annotate the request with pipeline facts (lead counts, service type, ...).
		for _, key := range []string{"leadCount", "serviceType", "recommendationCount"} {
			if val, ok := c.Get(key); ok {
				fields[toSnake(key)] = val
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func toSnake(key string) string {
	out := make([]byte, 0, len(key)+4)
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if ch >= 'A' && ch <= 'Z' {
			out = append(out, '_', ch+('a'-'A'))
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}
