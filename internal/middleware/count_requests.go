package middleware

import (
	"go-staffhub/internal/shared/counter"

	"github.com/gin-gonic/gin"
)

// CountRequests bumps the process-wide served-request counter.
func CountRequests(c counter.Counter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.Increment()
		ctx.Next()
	}
}
