package user

import (
	"time"
)

// PasswordResetToken is an opaque single-use credential. Only the latest
// token issued for a user is stored, issuing a new one replaces it.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

func NewPasswordReset(token PasswordResetToken, issuedAt time.Time, validDuration time.Duration) PasswordReset {
	return PasswordReset{Token: token, ExpiresAt: issuedAt.Add(validDuration)}
}

// IsValidAt is inclusive: a token is still accepted at its exact expiry.
func (r PasswordReset) IsValidAt(at time.Time) bool {
	return !at.After(r.ExpiresAt)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
