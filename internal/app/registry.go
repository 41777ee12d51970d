package app

import (
	"net/http"
	"time"

	"go-staffhub/internal/auth"
	"go-staffhub/internal/config"
	"go-staffhub/internal/employee"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/session"
	"go-staffhub/internal/shared/counter"
	"go-staffhub/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	requestCounter := counter.New()
	startedAt := time.Now()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	tokens := auth.NewTokenIssuer(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.TTL(),
	)
	authService := auth.NewService(authRepo, tokens)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)

	sessionStore := session.NewStore(rdb, cfg.Session.TTL())
	dashboardService := web.NewDashboardService(employeeRepo, requestCounter, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	webHandler := web.NewHandler(
		authService,
		employeeService,
		dashboardService,
		sessionStore,
		cfg.Session.CookieName,
		cfg.Session.Secure,
	)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.CountRequests(requestCounter))
	router.Use(middleware.ContextLogger(zap.L()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"uptime":          time.Since(startedAt).String(),
			"requests_served": requestCounter.Snapshot(),
		})
	})

	authMW := middleware.Auth(tokens)
	adminOnly := middleware.RequireRoles(auth.RoleAdmin)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authMW, adminOnly)
		employee.RegisterRoutes(api, employeeHandler, authMW)
	}

	web.RegisterRoutes(&router.RouterGroup, webHandler, sessionStore, cfg.Session.CookieName)

	return nil
}
