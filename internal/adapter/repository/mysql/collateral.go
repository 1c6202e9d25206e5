package mysql

import (
	"context"

	collDomain "lamf-backend/internal/domain/collateral"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, c *collDomain.Collateral) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollateralRepository) Save(ctx context.Context, c *collDomain.Collateral) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CollateralRepository) GetByFolio(ctx context.Context, folio string) (*collDomain.Collateral, error) {
	var out collDomain.Collateral
	res := r.db.WithContext(ctx).Where("folio_number = ?", folio).First(&out)
	return &out, res.Error
}

func (r *CollateralRepository) GetByFolioForUpdate(ctx context.Context, folio string) (*collDomain.Collateral, error) {
	var out collDomain.Collateral
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("folio_number = ?", folio).
		First(&out)
	return &out, res.Error
}

func (r *CollateralRepository) GetByFolios(ctx context.Context, folios []string) ([]collDomain.Collateral, error) {
	var out []collDomain.Collateral
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("folio_number IN ?", folios).
		Order("folio_number").
		Find(&out)
	return out, res.Error
}

func (r *CollateralRepository) GetByHolder(ctx context.Context, kind collDomain.HolderKind, ref string) ([]collDomain.Collateral, error) {
	var out []collDomain.Collateral
	res := r.db.WithContext(ctx).
		Where("holder_kind = ? AND holder_ref = ?", kind, ref).
		Order("folio_number").
		Find(&out)
	return out, res.Error
}
