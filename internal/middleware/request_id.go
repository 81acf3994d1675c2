package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "requestID"
)

// RequestID tags every request with an id, reusing the caller's header when
// it is a valid UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
