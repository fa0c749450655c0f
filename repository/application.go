package repository

import (
	"context"

	"github.com/subsidyhub/backend/domain"
)

type ApplicationFilter struct {
	Limit  int
	Offset int
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	ListByStatus(ctx context.Context, status string, filter ApplicationFilter) ([]domain.Application, error)
	ListExceptStatus(ctx context.Context, status string, filter ApplicationFilter) ([]domain.Application, error)
	UpdateReview(ctx context.Context, id int64, verdict domain.FraudVerdict, probability float64, status string) error
	UpdateDisposition(ctx context.Context, id int64, status, notes string) error
}
