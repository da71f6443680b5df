package user

import (
	"context"
	c "pwreset/internal/core/domain/common"
	"time"
)

type ResetPasswordInput struct {
	ID           ID
	Token        PasswordResetToken
	PasswordHash PasswordHash
	At           time.Time
}

type UserRepository interface {
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByPasswordResetToken returns ErrUserDoesNotExist unless some user
	// holds the token and its expiry is not before the given moment.
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken, at time.Time) (User, error)
	SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error
	// ResetPassword sets the password hash and clears the reset token in one
	// update, guarded by the token still being stored and unexpired.
	// It returns ErrInvalidPasswordResetToken when the guard does not hold.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}
