package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, c *Collateral) error
	Save(ctx context.Context, c *Collateral) error
	GetByFolio(ctx context.Context, folio string) (*Collateral, error)
	// GetByFolioForUpdate locks the row for the current transaction.
	GetByFolioForUpdate(ctx context.Context, folio string) (*Collateral, error)
	// GetByFolios returns whatever subset of the given folios exists.
	GetByFolios(ctx context.Context, folios []string) ([]Collateral, error)
	// GetByHolder returns all collateral currently held by the given record.
	GetByHolder(ctx context.Context, kind HolderKind, ref string) ([]Collateral, error)
}
