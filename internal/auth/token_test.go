package auth_test

import (
	"testing"
	"time"

	"go-staffhub/internal/auth"
	autherrors "go-staffhub/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testUser() *auth.User {
	return &auth.User{
		ID:       uuid.New(),
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     auth.RoleSales,
		IsActive: true,
	}
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	issuer := auth.NewTokenIssuer("test-secret", "staffhub", "staffhub-api", 24*time.Hour)
	issuer.Now = func() time.Time { return issuedAt }

	user := testUser()
	token, err := issuer.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Run("Accepted One Hour After Issuance", func(t *testing.T) {
		issuer.Now = func() time.Time { return issuedAt.Add(1 * time.Hour) }

		claims, err := issuer.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Equal(t, user.Username, claims.Username)
		assert.Equal(t, auth.RoleSales, claims.Role)
	})

	t.Run("Rejected 25 Hours After Issuance", func(t *testing.T) {
		issuer.Now = func() time.Time { return issuedAt.Add(25 * time.Hour) }

		_, err := issuer.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestTokenIssuer_Parse_Rejections(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	user := testUser()

	issuer := auth.NewTokenIssuer("test-secret", "staffhub", "staffhub-api", time.Hour)
	issuer.Now = func() time.Time { return now }

	token, err := issuer.Issue(user)
	assert.NoError(t, err)

	t.Run("Wrong Secret", func(t *testing.T) {
		other := auth.NewTokenIssuer("other-secret", "staffhub", "staffhub-api", time.Hour)
		other.Now = func() time.Time { return now }

		_, err := other.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Wrong Issuer", func(t *testing.T) {
		other := auth.NewTokenIssuer("test-secret", "someone-else", "staffhub-api", time.Hour)
		other.Now = func() time.Time { return now }

		_, err := other.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Wrong Audience", func(t *testing.T) {
		other := auth.NewTokenIssuer("test-secret", "staffhub", "another-api", time.Hour)
		other.Now = func() time.Time { return now }

		_, err := other.Parse(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
