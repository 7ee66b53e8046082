package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation    = "23505"
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) CreateUser(ctx context.Context, in NewUser) (User, error) {
	const query = `
	INSERT INTO users (username, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, username, email, password_hash, favorites, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(timeoutCtx, query, in.Username, in.Email, in.PasswordHash))
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return u, nil
}

func (r *PostgresRepo) GetUser(ctx context.Context, id int64) (User, error) {
	const query = `
	SELECT id, username, email, password_hash, favorites, created_at
	FROM users WHERE id = $1 LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const query = `
	SELECT id, username, email, password_hash, favorites, created_at
	FROM users WHERE email = $1 LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.QueryRow(timeoutCtx, query, email))
}

func (r *PostgresRepo) SetFavorites(ctx context.Context, userID int64, ids []int64) (User, error) {
	const query = `
	UPDATE users SET favorites = $2
	WHERE id = $1
	RETURNING id, username, email, password_hash, favorites, created_at
	`
	if ids == nil {
		ids = []int64{}
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.QueryRow(timeoutCtx, query, userID, ids))
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Favorites, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if u.Favorites == nil {
		u.Favorites = []int64{}
	}
	return u, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case emailConstraint:
		return ErrEmailTaken
	case usernameConstraint:
		return ErrUsernameTaken
	default:
		return ErrAlreadyExists
	}
}
