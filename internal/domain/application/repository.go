package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByNumber(ctx context.Context, appNumber string) (*Application, error)
	// GetByNumberForUpdate locks the row for the current transaction.
	GetByNumberForUpdate(ctx context.Context, appNumber string) (*Application, error)
	Delete(ctx context.Context, a *Application) error
}
