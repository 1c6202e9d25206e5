package productmock

import (
	"context"

	domain "lamf-backend/internal/domain/product"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies product.Repository.
type Repo struct {
	CreateFn    func(ctx context.Context, p *domain.Product) error
	SaveFn      func(ctx context.Context, p *domain.Product) error
	GetByCodeFn func(ctx context.Context, code string) (*domain.Product, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}
