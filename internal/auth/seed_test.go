package auth_test

import (
	"context"
	"testing"

	"go-staffhub/internal/auth"
	authMock "go-staffhub/internal/auth/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDefaultAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	ctx := context.Background()

	t.Run("Empty Store Gets Admin", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(ctx).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, user *auth.User) error {
				assert.Equal(t, "admin", user.Username)
				assert.Equal(t, "admin@staffhub.local", user.Email)
				assert.Equal(t, auth.RoleAdmin, user.Role)
				assert.True(t, user.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(user.PasswordHash), []byte("Admin@123")))
				return nil
			})

		assert.NoError(t, auth.SeedDefaultAdmin(ctx, mockRepo, "Admin@123"))
	})

	t.Run("Populated Store Is Left Alone", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(ctx).
			Return(int64(3), nil)

		// No Create expectation: seeding is a no-op once any user exists.
		assert.NoError(t, auth.SeedDefaultAdmin(ctx, mockRepo, "Admin@123"))
	})
}
