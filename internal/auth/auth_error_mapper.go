package auth

import (
	"errors"

	autherrors "go-staffhub/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates store failures into the auth error taxonomy.
// The unique-index translation is a backstop: uniqueness is normally caught
// by the service pre-check.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_user_username":
				return autherrors.ErrUsernameTaken
			case "uq_user_email":
				return autherrors.ErrEmailTaken
			}
		}
	}

	return err
}
