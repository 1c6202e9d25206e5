package collateralmock

import (
	"context"

	domain "lamf-backend/internal/domain/collateral"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies collateral.Repository.
// Unset read methods behave like an empty table.
type Repo struct {
	CreateFn              func(ctx context.Context, c *domain.Collateral) error
	SaveFn                func(ctx context.Context, c *domain.Collateral) error
	GetByFolioFn          func(ctx context.Context, folio string) (*domain.Collateral, error)
	GetByFolioForUpdateFn func(ctx context.Context, folio string) (*domain.Collateral, error)
	GetByFoliosFn         func(ctx context.Context, folios []string) ([]domain.Collateral, error)
	GetByHolderFn         func(ctx context.Context, kind domain.HolderKind, ref string) ([]domain.Collateral, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Collateral) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Collateral) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByFolio(ctx context.Context, folio string) (*domain.Collateral, error) {
	if m.GetByFolioFn != nil {
		return m.GetByFolioFn(ctx, folio)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByFolioForUpdate(ctx context.Context, folio string) (*domain.Collateral, error) {
	if m.GetByFolioForUpdateFn != nil {
		return m.GetByFolioForUpdateFn(ctx, folio)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByFolios(ctx context.Context, folios []string) ([]domain.Collateral, error) {
	if m.GetByFoliosFn != nil {
		return m.GetByFoliosFn(ctx, folios)
	}
	return nil, nil
}

func (m *Repo) GetByHolder(ctx context.Context, kind domain.HolderKind, ref string) ([]domain.Collateral, error) {
	if m.GetByHolderFn != nil {
		return m.GetByHolderFn(ctx, kind, ref)
	}
	return nil, nil
}
