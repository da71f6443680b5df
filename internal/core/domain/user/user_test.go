package user

import (
	c "pwreset/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2020, 1, 1, 15, 0, 0, 0, time.UTC)

func TestNewPasswordResetExpiry(t *testing.T) {
	reset := NewPasswordReset(PasswordResetToken("token"), issuedAt, time.Hour)
	require.Equal(t, issuedAt.Add(3600*time.Second), reset.ExpiresAt)
}

func TestPasswordResetIsValidAt(t *testing.T) {
	reset := NewPasswordReset(PasswordResetToken("token"), issuedAt, time.Hour)

	cases := []struct {
		id      string
		at      time.Time
		isValid bool
	}{
		{id: "issued", at: issuedAt, isValid: true},
		{id: "before-expiry", at: issuedAt.Add(59 * time.Minute), isValid: true},
		{id: "exact-expiry", at: issuedAt.Add(time.Hour), isValid: true},
		{id: "after-expiry", at: issuedAt.Add(time.Hour + time.Millisecond), isValid: false},
		{id: "long-after-expiry", at: issuedAt.Add(48 * time.Hour), isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.isValid, reset.IsValidAt(testcase.at))
		})
	}
}

func TestHasPendingPasswordReset(t *testing.T) {
	u := User{ID: 1, Email: c.Email("a@x.com")}
	require.False(t, u.HasPendingPasswordReset(issuedAt))

	u.PasswordReset = c.NewOptional(NewPasswordReset(PasswordResetToken("token"), issuedAt, time.Hour), true)
	require.True(t, u.HasPendingPasswordReset(issuedAt.Add(time.Minute)))
	require.False(t, u.HasPendingPasswordReset(issuedAt.Add(2*time.Hour)))
}

func TestSecretsAreMaskedWhenPrinted(t *testing.T) {
	require.Equal(t, "***", RawPassword("NewPass1!").String())
	require.Equal(t, "***", PasswordHash("hash").String())
	require.Equal(t, "***", PasswordResetToken("token").String())
}
