package user

import (
	c "pwreset/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID            ID
	Email         c.Email
	PasswordHash  PasswordHash
	PasswordReset c.Optional[PasswordReset]
}

// HasPendingPasswordReset reports whether the user holds a reset token
// that is still accepted at the given moment.
func (u *User) HasPendingPasswordReset(at time.Time) bool {
	return u.PasswordReset.IsPresent && u.PasswordReset.Value.IsValidAt(at)
}
