package middleware

import (
	"strings" // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request id generation
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "requestID"

// RequestID propagates an incoming request id or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)       // Store for handlers and the request log
		c.Header(RequestIDHeader, id) // Echo back to the client
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "" outside of it
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// LogEntry returns a logrus entry tagged with the request id
func LogEntry(c *gin.Context) *logrus.Entry {
	return logrus.WithField("request_id", GetRequestID(c))
}
