package uow

import (
	"context"

	"lamf-backend/internal/domain/application"
	"lamf-backend/internal/domain/collateral"
	"lamf-backend/internal/domain/loan"
	"lamf-backend/internal/domain/product"
)

// Repos bundles transaction-bound repositories for multi-entity flows.
type Repos struct {
	Products     product.Repository
	Collaterals  collateral.Repository
	Applications application.Repository
	Loans        loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, appNumber string, fn func(r Repos, a *application.Application) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
