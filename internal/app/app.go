package app

import (
	"context"

	"go-staffhub/internal/auth"
	"go-staffhub/internal/config"
	"go-staffhub/internal/employee"
	"go-staffhub/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id uuid PRIMARY KEY,
	request_id text,
	aggregate_type text NOT NULL,
	aggregate_id text NOT NULL,
	event_type text NOT NULL,
	topic text NOT NULL,
	payload jsonb NOT NULL,
	status text NOT NULL DEFAULT 'pending',
	retry_count int NOT NULL DEFAULT 0,
	next_retry_at timestamptz,
	processed_at timestamptz,
	error_message text,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// BuildApp connects the infrastructure, migrates and seeds the store, and
// registers every module's routes.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	if err := migrateAndSeed(gormDB, cfg); err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient, cfg)
}

func migrateAndSeed(gormDB *gorm.DB, cfg *config.Config) error {
	if err := gormDB.AutoMigrate(&auth.User{}, &employee.Employee{}); err != nil {
		return err
	}
	if err := gormDB.Exec(outboxDDL).Error; err != nil {
		return err
	}

	authRepo := auth.NewRepository(gormDB)
	return auth.SeedDefaultAdmin(context.Background(), authRepo, cfg.Seed.AdminPassword)
}
