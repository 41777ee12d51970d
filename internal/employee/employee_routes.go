package employee

import (
	"go-staffhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee endpoints. All of them require a valid
// bearer token but none of them is role-restricted.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
) {
	employees := r.Group("/employees")
	employees.Use(authMW)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		employees.GET("/search",
			middleware.RateLimitByUser(3, 10),
			handler.Search,
		)

		employees.GET("/department/:name",
			middleware.RateLimitByUser(3, 10),
			handler.GetByDepartment,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.SoftDelete,
		)

		employees.DELETE("/:id/permanent",
			middleware.RateLimitByUser(0.2, 1),
			handler.HardDelete,
		)
	}
}
