package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
	SELECT id, username, password_hash, is_admin, created_at
	FROM users
	WHERE username = $1
	`
	row := r.pool.QueryRow(ctx, query, username)

	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Seed inserts the account if the username is not taken yet. An existing
// account is left untouched so restarts never rewrite credentials.
func (r *userRepository) Seed(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (username, password_hash, is_admin)
	VALUES ($1, $2, $3)
	ON CONFLICT (username) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, user.Username, user.PasswordHash, user.IsAdmin)
	return err
}
