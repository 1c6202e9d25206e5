package mysql

import (
	"context"

	productDomain "lamf-backend/internal/domain/product"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Save(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*productDomain.Product, error) {
	var out productDomain.Product
	res := r.db.WithContext(ctx).Where("product_code = ?", code).First(&out)
	return &out, res.Error
}
