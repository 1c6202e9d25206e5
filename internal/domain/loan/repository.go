package loan

import "context"

type Repository interface {
	// Create persists the loan together with its schedule rows.
	Create(ctx context.Context, l *Loan) error
	// Save persists loan fields only; schedule rows go through SaveEMI.
	Save(ctx context.Context, l *Loan) error
	SaveEMI(ctx context.Context, e *EMI) error
	// GetByNumber loads the loan with its schedule ordered by emi_number.
	GetByNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// GetByNumberForUpdate locks the loan row for the current transaction.
	GetByNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	GetByAppNumber(ctx context.Context, appNumber string) (*Loan, error)
	// ListOpenNumbers returns loan numbers in active or overdue status.
	ListOpenNumbers(ctx context.Context) ([]string, error)
}
