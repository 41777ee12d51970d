package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auth endpoints. Register and login are public;
// user administration requires a bearer token, and role/status changes are
// Admin-only.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	adminOnly gin.HandlerFunc,
) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)

		users := authGroup.Group("/users")
		users.Use(authMW)
		{
			users.GET("", handler.ListUsers)
			users.GET("/:id", handler.GetUser)
			users.PUT("/:id/role", adminOnly, handler.UpdateRole)
			users.PUT("/:id/status", adminOnly, handler.UpdateStatus)
		}
	}
}
