package loan

import (
	"context"
	"errors"
	"log"
	"time"

	collDomain "lamf-backend/internal/domain/collateral"
	domain "lamf-backend/internal/domain/loan"
	"lamf-backend/internal/domain/uow"
	"lamf-backend/pkg/amortize"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func (u *Usecase) Get(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	l, err := u.repo.GetByNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

type RecordPaymentInput struct {
	LoanNumber string
	EMINumber  int
	Amount     float64
	Reference  string
	PaidAt     *time.Time
}

// RecordPayment marks one EMI paid and rolls the loan's balances forward.
// The whole step runs under a row lock on the loan so two concurrent
// payments against different EMIs cannot lose each other's balance deltas.
//
// The scheduled principal is always the amount retired from the outstanding
// balance; paying more or less than the installment changes PaidAmount only.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*domain.Loan, error) {
	now := time.Now().UTC()
	paidAt := now
	if in.PaidAt != nil {
		paidAt = in.PaidAt.UTC()
	}

	var out *domain.Loan
	err := u.uow.WithinLoanTx(ctx, in.LoanNumber, func(r uow.Repos, l *domain.Loan) error {
		e := l.EMIByNumber(in.EMINumber)
		if e == nil {
			return domain.ErrEMINotFound
		}
		if l.Status == domain.StatusClosed {
			return domain.ErrClosed
		}
		if e.Status == domain.EMIPaid {
			return domain.ErrAlreadyPaid
		}

		e.Status = domain.EMIPaid
		e.PaidAmount = in.Amount
		e.PaidAt = &paidAt
		e.PaymentReference = in.Reference

		l.TotalPrincipalPaid = amortize.Round2(l.TotalPrincipalPaid + e.Principal)
		l.TotalInterestPaid = amortize.Round2(l.TotalInterestPaid + e.Interest)
		l.OutstandingAmount = amortize.Round2(l.OutstandingAmount - e.Principal)

		if next := l.FirstPending(); next != nil {
			due := next.DueDate
			l.NextEMIDate = &due
		} else {
			l.NextEMIDate = nil
		}
		l.RecomputeLTV()

		if l.OutstandingAmount <= 0 || !l.HasPending() {
			l.Status = domain.StatusClosed
			l.ClosureReason = domain.ClosureFullyPaid
			closedAt := now
			l.ClosedAt = &closedAt
			// forced release: the loan is closed, the active-loan guard no
			// longer applies
			held, err := r.Collaterals.GetByHolder(ctx, collDomain.HolderLoan, l.LoanNumber)
			if err != nil {
				return err
			}
			for i := range held {
				if err := held[i].Release(now); err != nil {
					return err
				}
				if err := r.Collaterals.Save(ctx, &held[i]); err != nil {
					return err
				}
			}
		} else if l.HasOverdue() {
			l.Status = domain.StatusOverdue
		} else {
			l.Status = domain.StatusActive
		}

		if err := r.Loans.SaveEMI(ctx, e); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// SweepResult reports the aggregate outcome of an overdue sweep. Per-loan
// failures are counted, not escalated.
type SweepResult struct {
	LoansScanned int `json:"loans_scanned"`
	LoansFlagged int `json:"loans_flagged"`
	EMIsFlagged  int `json:"emis_flagged"`
	Failed       int `json:"failed"`
}

// MarkOverdue flags every pending EMI due before today (date-only compare)
// across open loans, and moves those loans to overdue. Each loan is handled
// in its own locked transaction so the sweep interleaves safely with payment
// recording. Running it twice on the same date is a no-op the second time.
func (u *Usecase) MarkOverdue(ctx context.Context, today time.Time) (SweepResult, error) {
	cutoff := dateOnly(today)

	numbers, err := u.repo.ListOpenNumbers(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{LoansScanned: len(numbers)}
	for _, num := range numbers {
		flagged := 0
		err := u.uow.WithinLoanTx(ctx, num, func(r uow.Repos, l *domain.Loan) error {
			if !l.Open() {
				return nil
			}
			for i := range l.Schedule {
				e := &l.Schedule[i]
				if e.Status != domain.EMIPending || !dateOnly(e.DueDate).Before(cutoff) {
					continue
				}
				e.Status = domain.EMIOverdue
				if err := r.Loans.SaveEMI(ctx, e); err != nil {
					return err
				}
				flagged++
			}
			if flagged == 0 {
				return nil
			}
			l.Status = domain.StatusOverdue
			return r.Loans.Save(ctx, l)
		})
		if err != nil {
			log.Printf("overdue sweep: loan %s: %v", num, err)
			res.Failed++
			continue
		}
		if flagged > 0 {
			res.LoansFlagged++
			res.EMIsFlagged += flagged
		}
	}
	return res, nil
}

// UpdateStatus is the administrative override. It performs no
// transition-validity check; the audit line below is the only trail.
func (u *Usecase) UpdateStatus(ctx context.Context, loanNumber string, status domain.Status) (*domain.Loan, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrUnknownStatus
	}

	var out *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *domain.Loan) error {
		log.Printf("audit: loan %s status override %s -> %s", l.LoanNumber, l.Status, status)
		l.Status = status
		if status == domain.StatusClosed && l.ClosedAt == nil {
			now := time.Now().UTC()
			l.ClosedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
