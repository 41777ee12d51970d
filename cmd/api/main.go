package main

import (
	"os"
	"time"

	"go-staffhub/internal/app"
	"go-staffhub/internal/bootstrap"
	"go-staffhub/internal/config"
	"go-staffhub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// build dependency + routes
	if err := app.BuildApp(r, cfg); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.HTTP.Port,
			ReadTimeout:     time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout:    time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
			IdleTimeout:     time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
			ShutdownTimeout: time.Duration(cfg.HTTP.ShutdownTimeoutSec) * time.Second,
		},
		auditLogger,
	)
}
