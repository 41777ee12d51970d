package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAdmin creates the bootstrap Admin account the first time the
// store is initialized. The fixed credentials are an operational requirement:
// without them there is no way to reach the user-administration endpoints.
func SeedDefaultAdmin(ctx context.Context, repo Repository, password string) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		ID:           uuid.New(),
		Username:     "admin",
		Email:        "admin@staffhub.local",
		PasswordHash: string(hashed),
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Named("auth.seed").Info("default admin seeded",
		zap.String("username", admin.Username),
	)
	return nil
}
