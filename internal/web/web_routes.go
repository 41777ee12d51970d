package web

import (
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	store *session.Store,
	cookieName string,
) {
	webGroup := r.Group("/web")
	{
		webGroup.POST("/login",
			middleware.RateLimitByIP(1, 5),
			handler.Login,
		)

		authed := webGroup.Group("")
		authed.Use(session.Middleware(store, cookieName))
		{
			authed.POST("/logout", handler.Logout)
			authed.GET("/dashboard", handler.Dashboard)
			authed.GET("/employees", handler.Employees)
		}
	}
}
