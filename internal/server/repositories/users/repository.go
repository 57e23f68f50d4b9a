package users

import (
	"context"
	"time"

	"github.com/guardianeye/guardianeye/internal/server/models"
)

type Repository interface {
	// Create stores a new user. It returns common.ErrorAlreadyExists when the
	// e-mail is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// SetResetToken stores a password reset digest and its expiry.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// ResetPassword replaces the password of the user holding tokenHash if the
	// token is still valid at now, clearing the reset fields in the same
	// statement. It returns common.ErrorNotFound when no such user exists.
	ResetPassword(ctx context.Context, tokenHash, passwordHash string, now time.Time) (string, error)
}
