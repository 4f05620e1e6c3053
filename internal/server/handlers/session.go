package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the client's session id on requests and responses.
	SessionHeader = "X-Session-ID"
	sessionKey    = "sessionID"
)

// Session resolves the caller's session id from the X-Session-ID header,
// minting a new one when absent, and echoes it back on the response.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the id stored by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
