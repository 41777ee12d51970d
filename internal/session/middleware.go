package session

import (
	"net/http"

	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Middleware authenticates web requests by session cookie. A valid bearer
// token does not satisfy this check; the two strategies are never conflated.
func Middleware(store *Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			response.Error(c, http.StatusUnauthorized, "Not signed in")
			c.Abort()
			return
		}

		principal, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Session expired")
			c.Abort()
			return
		}

		c.Set("user_id", principal.ID)
		c.Set("username", principal.Username)
		c.Set("role", principal.Role)
		c.Set("session_id", sid)

		c.Next()
	}
}
