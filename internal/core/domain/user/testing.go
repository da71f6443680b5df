package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "pwreset/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

// FakePasswordResetTokenGenerator hands out "<prefix>-1", "<prefix>-2", ...
type FakePasswordResetTokenGenerator struct {
	Prefix      string
	ReturnError bool
	generated   int
	lock        sync.Mutex
}

func NewFakePasswordResetTokenGenerator(prefix string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Prefix: prefix}
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return PasswordResetToken(""), fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	g.generated++
	return PasswordResetToken(fmt.Sprintf("%s-%d", g.Prefix, g.generated)), nil
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	WriteCount  int
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

// Add stores a user as is, assigning the next ID when u.ID is zero.
func (r *FakeUserRepository) Add(u User) User {
	r.lock.Lock()
	defer r.lock.Unlock()
	if u.ID == 0 {
		maxID := ID(0)
		for _, existing := range r.Users {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		u.ID = maxID + 1
	}
	r.Users = append(r.Users, u)
	return u
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
	at time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.HasPendingPasswordReset(at) && u.PasswordReset.Value.Token == token {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordReset = c.NewOptional(reset, true)
			r.WriteCount++
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not reset password for user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if !u.HasPendingPasswordReset(input.At) || u.PasswordReset.Value.Token != input.Token {
			return ErrInvalidPasswordResetToken
		}
		r.Users[ix].PasswordHash = input.PasswordHash
		r.Users[ix].PasswordReset = c.None[PasswordReset]()
		r.WriteCount++
		return nil
	}
	return ErrInvalidPasswordResetToken
}
