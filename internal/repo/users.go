package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slugsera/backend-shop/internal/user"
)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	findUserByCredentialsSQL = `SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = $1 AND password_hash = $2`

	uniqueViolationCode = "23505"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository using the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user, mapping the unique email constraint to ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("inserting user %q: %w", u.Email, err)
	}
	return nil
}

// FindByCredentials looks up the (email, hash) pair. A missing account and
// a wrong password both return (nil, nil).
func (r *UserRepository) FindByCredentials(ctx context.Context, email, passwordHash string) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, findUserByCredentialsSQL, email, passwordHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding user by credentials: %w", err)
	}
	return &u, nil
}
