package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByCode(ctx context.Context, code string) (*Product, error)
	Save(ctx context.Context, p *Product) error
}
