package user

import (
	"context"
	"errors"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const (
	PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
	RESET_TOKEN_CONSTRAINT_NAME   = "user_reset_token_idx"
)

const selectUser = `
SELECT id, email, password_hash, reset_token, reset_token_expiry
FROM "user"
`

const getUserByID = selectUser + `WHERE id = $1`

const getUserByEmail = selectUser + `WHERE email = $1`

// The row stays locked until the surrounding transaction ends.
const getUserByPasswordResetToken = selectUser + `
WHERE reset_token = $1 AND reset_token_expiry >= $2
FOR UPDATE
`

const setPasswordReset = `
UPDATE "user" SET reset_token = $2, reset_token_expiry = $3
WHERE id = $1
`

const resetPassword = `
UPDATE "user" SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
WHERE id = $1 AND reset_token = $3 AND reset_token_expiry >= $4
`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	return r.getOne(ctx, getUserByID, int64(id))
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.getOne(ctx, getUserByEmail, string(email))
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	at time.Time,
) (u user.User, err error) {
	return r.getOne(ctx, getUserByPasswordResetToken, string(token), at)
}

func (r *PgxUserRepository) SetPasswordReset(ctx context.Context, id user.ID, reset user.PasswordReset) error {
	tag, err := r.db.Exec(ctx, setPasswordReset, int64(id), string(reset.Token), reset.ExpiresAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
		pgErr.ConstraintName == RESET_TOKEN_CONSTRAINT_NAME {
		return e.NewInvalidStateError("password reset token is already taken")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ResetPassword(ctx context.Context, input user.ResetPasswordInput) error {
	tag, err := r.db.Exec(
		ctx,
		resetPassword,
		int64(input.ID),
		string(input.PasswordHash),
		string(input.Token),
		input.At,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}

type dbUser struct {
	ID               int64
	Email            string
	PasswordHash     string
	ResetToken       pgtype.Varchar
	ResetTokenExpiry pgtype.Timestamptz
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, args ...interface{}) (u user.User, err error) {
	var row dbUser
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.Email,
		&row.PasswordHash,
		&row.ResetToken,
		&row.ResetTokenExpiry,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeUser(row)
}

func decodeUser(row dbUser) (u user.User, err error) {
	hasToken := row.ResetToken.Status == pgtype.Present
	hasExpiry := row.ResetTokenExpiry.Status == pgtype.Present
	if hasToken != hasExpiry {
		return u, e.NewInvalidStateErrorf("user %d has incomplete password reset state", row.ID)
	}

	u = user.User{
		ID:           user.ID(row.ID),
		Email:        c.Email(row.Email),
		PasswordHash: user.PasswordHash(row.PasswordHash),
	}
	if hasToken {
		u.PasswordReset = c.NewOptional(
			user.PasswordReset{
				Token:     user.PasswordResetToken(row.ResetToken.String),
				ExpiresAt: row.ResetTokenExpiry.Time.UTC(),
			},
			true,
		)
	}
	return u, nil
}
