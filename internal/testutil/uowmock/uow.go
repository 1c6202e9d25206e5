package uowmock

import (
	"context"
	"errors"

	"lamf-backend/internal/domain/application"
	"lamf-backend/internal/domain/loan"
	"lamf-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW satisfies uow.UnitOfWork without a database. By default every tx
// variant runs fn against Repos directly (no transaction, no locking), with
// the row-locking lookups delegated to the corresponding repo mock; set the
// Fn fields to override.
type UoW struct {
	Repos uow.Repos

	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, appNumber string, fn func(r uow.Repos, a *application.Application) error) error
	WithinLoanTxFn        func(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinApplicationTx(ctx context.Context, appNumber string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, appNumber, fn)
	}
	if m.Repos.Applications == nil {
		return errUnimplemented
	}
	a, err := m.Repos.Applications.GetByNumberForUpdate(ctx, appNumber)
	if err != nil {
		return err
	}
	return fn(m.Repos, a)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanNumber, fn)
	}
	if m.Repos.Loans == nil {
		return errUnimplemented
	}
	l, err := m.Repos.Loans.GetByNumberForUpdate(ctx, loanNumber)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}
