package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionIDKey     = "sessionId"
	sessionIssuedKey = "sessionIssued"
	// SessionHeader carries the dashboard session that owns a lead collection.
	SessionHeader = "X-Session-Id"
)

// Session resolves the caller's session from the X-Session-Id header. A request without
// one starts a fresh session; the new ID is echoed back so the client can reuse it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		issued := id == "" || len(id) > 128
		if issued {
			id = uuid.NewString()
		}
		c.Set(sessionIDKey, id)
		c.Set(sessionIssuedKey, issued)
		c.Writer.Header().Set(SessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID set by the Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// SessionIssued reports whether the Session middleware minted the ID for this request
// rather than taking it from the client.
func SessionIssued(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(sessionIssuedKey)
}
