package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

const pgUniqueViolation = "23505"

const UserSchema = `
CREATE TABLE IF NOT EXISTS portal_user (
    id            TEXT PRIMARY KEY,
    email         TEXT        NOT NULL UNIQUE,
    password_hash TEXT        NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, UserSchema); err != nil {
		return fmt.Errorf("user schema [exec]: %w", err)
	}
	return nil
}

func (r *UserRepo) Create(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO portal_user (id, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
		`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user [exec]: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user.get_by_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getUser(ctx, "email", email)
}

func (r *UserRepo) GetByID(ctx context.Context, uid string) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user.get_by_id")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getUser(ctx, "id", uid)
}

func (r *UserRepo) getUser(ctx context.Context, column, value string) (User, error) {
	var user User
	// column is one of two constants, never user input
	err := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at FROM portal_user WHERE `+column+` = $1`,
		value,
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("user [query row]: %w", err)
	}
	return user, nil
}

func (r *UserRepo) UpdateEmail(ctx context.Context, uid, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user.update_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE portal_user SET email = $2 WHERE id = $1`, uid, email)
	if err != nil {
		return fmt.Errorf("update email [exec]: %w", mapUniqueViolation(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user.update_password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE portal_user SET password_hash = $2 WHERE id = $1`, uid, passwordHash)
	if err != nil {
		return fmt.Errorf("update password [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUserExists
	}
	return err
}
