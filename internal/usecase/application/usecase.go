package application

import (
	"context"
	"errors"
	"time"

	domain "lamf-backend/internal/domain/application"
	collDomain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	"lamf-backend/internal/domain/product"
	"lamf-backend/internal/domain/uow"
	"lamf-backend/pkg/amortize"
	"lamf-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo        domain.Repository
	collaterals collDomain.Repository
	uow         uow.UnitOfWork
}

func NewUsecase(r domain.Repository, collaterals collDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, collaterals: collaterals, uow: tx}
}

type Applicant struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	TaxID       string    `json:"tax_id"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

type CreateInput struct {
	Applicant       Applicant
	ProductCode     string
	RequestedAmount float64
	TenureMonths    int
	Folios          []string
	Draft           bool
}

// Create validates the request against the product, resolves and pledges the
// requested collateral, and persists the application — all in one
// transaction, so a failed validation never leaves a folio half-pledged.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Application, error) {
	if in.RequestedAmount <= 0 || in.TenureMonths <= 0 {
		return nil, domain.ErrAmountOutOfRange
	}

	now := time.Now().UTC()
	var out *domain.Application

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByCode(ctx, in.ProductCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return product.ErrNotFound
			}
			return err
		}
		if !p.Active() {
			return domain.ErrProductInactive
		}
		if in.RequestedAmount < p.MinAmount || in.RequestedAmount > p.MaxAmount {
			return domain.ErrAmountOutOfRange
		}
		if in.TenureMonths < p.MinTenureMonths || in.TenureMonths > p.MaxTenureMonths {
			return domain.ErrTenureOutOfRange
		}

		pledged, total, err := resolveFreeCollateral(ctx, r.Collaterals, in.Folios)
		if err != nil {
			return err
		}

		ltv := 0.0
		if total > 0 {
			ltv = amortize.Round2(in.RequestedAmount / total * 100)
		}
		// boundary inclusive: ltv == maxLTV is accepted
		if ltv > p.MaxLTV {
			return domain.ErrLTVExceeded
		}

		a := &domain.Application{
			AppNumber:            id.NewNumber("APP", now),
			ApplicantName:        in.Applicant.Name,
			Email:                in.Applicant.Email,
			Phone:                in.Applicant.Phone,
			TaxID:                in.Applicant.TaxID,
			Address:              in.Applicant.Address,
			DateOfBirth:          in.Applicant.DateOfBirth,
			ProductCode:          p.ProductCode,
			RequestedAmount:      in.RequestedAmount,
			TenureMonths:         in.TenureMonths,
			InterestRate:         p.InterestRate, // snapshot
			TotalCollateralValue: total,
			LTV:                  ltv,
			Status:               domain.StatusSubmitted,
		}
		if in.Draft {
			a.Status = domain.StatusDraft
		} else {
			a.StampStage(domain.StatusSubmitted, now)
		}

		for i := range pledged {
			if err := pledged[i].Pledge(collDomain.HolderApplication, a.AppNumber, now); err != nil {
				return err
			}
			if err := r.Collaterals.Save(ctx, &pledged[i]); err != nil {
				return err
			}
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveFreeCollateral loads the requested folios under lock and verifies
// every one exists with no lien. A count mismatch or a marked lien both
// surface as ErrCollateralUnavailable.
func resolveFreeCollateral(ctx context.Context, repo collDomain.Repository, folios []string) ([]collDomain.Collateral, float64, error) {
	if len(folios) == 0 {
		return nil, 0, nil
	}
	found, err := repo.GetByFolios(ctx, folios)
	if err != nil {
		return nil, 0, err
	}
	if len(found) != len(folios) {
		return nil, 0, domain.ErrCollateralUnavailable
	}
	total := 0.0
	for i := range found {
		if found[i].LienStatus == collDomain.LienMarked {
			return nil, 0, domain.ErrCollateralUnavailable
		}
		total = amortize.Round2(total + found[i].CurrentValue)
	}
	return found, total, nil
}

type TransitionInput struct {
	To             domain.Status `json:"status"`
	Remarks        string        `json:"remarks"`
	ApprovedAmount float64       `json:"approved_amount"`
}

// Transition applies one status move from the strict table. Side effects
// (collateral release on rejection, loan creation on disbursal) run in the
// same transaction as the status change. The returned loan is non-nil only
// for a disbursal.
func (u *Usecase) Transition(ctx context.Context, appNumber string, in TransitionInput) (*domain.Application, *loanDomain.Loan, error) {
	now := time.Now().UTC()
	var (
		outApp  *domain.Application
		outLoan *loanDomain.Loan
	)

	err := u.uow.WithinApplicationTx(ctx, appNumber, func(r uow.Repos, a *domain.Application) error {
		if !domain.CanTransition(a.Status, in.To) {
			return domain.ErrInvalidTransition
		}

		switch in.To {
		case domain.StatusSubmitted:
			// a draft may be stale: the product and the pledged folios'
			// NAV may have moved since the draft was created
			if err := revalidateForSubmit(ctx, r, a); err != nil {
				return err
			}

		case domain.StatusApproved:
			amount := in.ApprovedAmount
			if amount <= 0 {
				amount = a.RequestedAmount
			}
			a.ApprovedAmount = amount

		case domain.StatusRejected:
			// forced release: no loan exists yet, so the active-loan guard
			// does not apply
			if err := releaseHeld(ctx, r.Collaterals, collDomain.HolderApplication, a.AppNumber, now); err != nil {
				return err
			}

		case domain.StatusDisbursed:
			l, err := createLoan(ctx, r, a, now)
			if err != nil {
				return err
			}
			outLoan = l
		}

		a.Status = in.To
		if in.Remarks != "" {
			a.Remarks = in.Remarks
		}
		a.StampStage(in.To, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		outApp = a
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	return outApp, outLoan, nil
}

// revalidateForSubmit re-runs the creation-time checks for a draft being
// submitted. The folios are already pledged to the draft, so liens are not
// re-resolved; product state and the NAV-driven LTV are rechecked against
// current values, and the application's collateral snapshot is refreshed.
func revalidateForSubmit(ctx context.Context, r uow.Repos, a *domain.Application) error {
	p, err := r.Products.GetByCode(ctx, a.ProductCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.ErrNotFound
		}
		return err
	}
	if !p.Active() {
		return domain.ErrProductInactive
	}
	if a.RequestedAmount < p.MinAmount || a.RequestedAmount > p.MaxAmount {
		return domain.ErrAmountOutOfRange
	}
	if a.TenureMonths < p.MinTenureMonths || a.TenureMonths > p.MaxTenureMonths {
		return domain.ErrTenureOutOfRange
	}

	held, err := r.Collaterals.GetByHolder(ctx, collDomain.HolderApplication, a.AppNumber)
	if err != nil {
		return err
	}
	total := 0.0
	for i := range held {
		total = amortize.Round2(total + held[i].CurrentValue)
	}
	ltv := 0.0
	if total > 0 {
		ltv = amortize.Round2(a.RequestedAmount / total * 100)
	}
	if ltv > p.MaxLTV {
		return domain.ErrLTVExceeded
	}
	a.TotalCollateralValue = total
	a.LTV = ltv
	return nil
}

// createLoan converts an approved application into a funded loan: generates
// the schedule, creates the loan record, and migrates the collateral liens
// from the application to the loan. Runs inside the disbursal transaction.
func createLoan(ctx context.Context, r uow.Repos, a *domain.Application, now time.Time) (*loanDomain.Loan, error) {
	amount := a.DisbursalAmount()
	schedule, err := amortize.Schedule(amount, a.InterestRate, a.TenureMonths, now)
	if err != nil {
		return nil, err
	}

	emis := make([]loanDomain.EMI, len(schedule))
	for i, ln := range schedule {
		emis[i] = loanDomain.EMI{
			Number:    ln.Number,
			DueDate:   ln.DueDate,
			Principal: ln.Principal,
			Interest:  ln.Interest,
			Total:     ln.Total,
			Status:    loanDomain.EMIPending,
		}
	}

	held, err := r.Collaterals.GetByHolder(ctx, collDomain.HolderApplication, a.AppNumber)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for i := range held {
		total = amortize.Round2(total + held[i].CurrentValue)
	}

	firstDue := schedule[0].DueDate
	l := &loanDomain.Loan{
		LoanNumber:           id.NewNumber("LN", now),
		AppNumber:            a.AppNumber,
		BorrowerName:         a.ApplicantName,
		BorrowerEmail:        a.Email,
		BorrowerPhone:        a.Phone,
		ProductCode:          a.ProductCode,
		DisbursedAmount:      amount,
		OutstandingAmount:    amount,
		TenureMonths:         a.TenureMonths,
		InterestRate:         a.InterestRate,
		EMIAmount:            amortize.Payment(amount, a.InterestRate, a.TenureMonths),
		NextEMIDate:          &firstDue,
		TotalCollateralValue: total,
		Status:               loanDomain.StatusActive,
		Schedule:             emis,
	}
	l.RecomputeLTV()

	if err := r.Loans.Create(ctx, l); err != nil {
		return nil, err
	}
	for i := range held {
		if err := held[i].MigrateHolder(collDomain.HolderLoan, l.LoanNumber); err != nil {
			return nil, err
		}
		if err := r.Collaterals.Save(ctx, &held[i]); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// releaseHeld force-releases every folio held by the given record.
func releaseHeld(ctx context.Context, repo collDomain.Repository, kind collDomain.HolderKind, ref string, now time.Time) error {
	held, err := repo.GetByHolder(ctx, kind, ref)
	if err != nil {
		return err
	}
	for i := range held {
		if err := held[i].Release(now); err != nil {
			return err
		}
		if err := repo.Save(ctx, &held[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, appNumber string) (*domain.Application, []collDomain.Collateral, error) {
	a, err := u.repo.GetByNumber(ctx, appNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	held, err := u.collaterals.GetByHolder(ctx, collDomain.HolderApplication, appNumber)
	if err != nil {
		return nil, nil, err
	}
	return a, held, nil
}

// Delete removes a draft and releases anything it pledged. Non-drafts are
// immutable history and cannot be deleted.
func (u *Usecase) Delete(ctx context.Context, appNumber string) error {
	now := time.Now().UTC()
	err := u.uow.WithinApplicationTx(ctx, appNumber, func(r uow.Repos, a *domain.Application) error {
		if a.Status != domain.StatusDraft {
			return domain.ErrNotDraft
		}
		if err := releaseHeld(ctx, r.Collaterals, collDomain.HolderApplication, a.AppNumber, now); err != nil {
			return err
		}
		return r.Applications.Delete(ctx, a)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
