package user

import (
	"errors"
)

var (
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidPasswordResetToken = errors.New("password reset token is invalid or has expired")
)
