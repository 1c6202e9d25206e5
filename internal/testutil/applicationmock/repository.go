package applicationmock

import (
	"context"

	domain "lamf-backend/internal/domain/application"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies application.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Application) error
	SaveFn                 func(ctx context.Context, a *domain.Application) error
	GetByNumberFn          func(ctx context.Context, appNumber string) (*domain.Application, error)
	GetByNumberForUpdateFn func(ctx context.Context, appNumber string) (*domain.Application, error)
	DeleteFn               func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByNumber(ctx context.Context, appNumber string) (*domain.Application, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, appNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByNumberForUpdate(ctx context.Context, appNumber string) (*domain.Application, error) {
	if m.GetByNumberForUpdateFn != nil {
		return m.GetByNumberForUpdateFn(ctx, appNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Delete(ctx context.Context, a *domain.Application) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a)
	}
	return nil
}
