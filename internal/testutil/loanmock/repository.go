package loanmock

import (
	"context"

	domain "lamf-backend/internal/domain/loan"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository. Unset read
// methods behave like an empty table.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	SaveEMIFn              func(ctx context.Context, e *domain.EMI) error
	GetByNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByAppNumberFn       func(ctx context.Context, appNumber string) (*domain.Loan, error)
	ListOpenNumbersFn      func(ctx context.Context) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) SaveEMI(ctx context.Context, e *domain.EMI) error {
	if m.SaveEMIFn != nil {
		return m.SaveEMIFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, loanNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByNumberForUpdateFn != nil {
		return m.GetByNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByAppNumber(ctx context.Context, appNumber string) (*domain.Loan, error) {
	if m.GetByAppNumberFn != nil {
		return m.GetByAppNumberFn(ctx, appNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListOpenNumbers(ctx context.Context) ([]string, error) {
	if m.ListOpenNumbersFn != nil {
		return m.ListOpenNumbersFn(ctx)
	}
	return nil, nil
}
