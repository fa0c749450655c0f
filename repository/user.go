package repository

import (
	"context"

	"github.com/subsidyhub/backend/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Seed(ctx context.Context, user *domain.User) error
}
