package middleware

import (
	"context"
	"net/http"
	"time"

	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
)

// Timeout puts a deadline on the request context. The chain runs on the
// request goroutine; a handler that gives up on the deadline without writing
// gets a 503.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.ErrorResponse{
				Code:    "TIMEOUT",
				Message: "request timed out",
			})
		}
	}
}
