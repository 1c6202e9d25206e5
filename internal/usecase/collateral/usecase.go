package collateral

import (
	"context"
	"errors"
	"log"
	"time"

	domain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	"lamf-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase is the collateral ledger: every mutation of collateral state in
// the system goes through here (or through entity methods invoked inside an
// application/loan transaction). Folio mutations run under a row lock so a
// concurrent pledge can never be overwritten by a stale full-record save.
type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

type RegisterInput struct {
	FolioNumber string  `json:"folio_number"`
	FundName    string  `json:"fund_name"`
	Units       float64 `json:"units"`
	NAVPerUnit  float64 `json:"nav_per_unit"`
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.Collateral, error) {
	if in.FolioNumber == "" || in.Units < 0 || in.NAVPerUnit < 0 {
		return nil, errors.New("invalid collateral input")
	}

	_, err := u.repo.GetByFolio(ctx, in.FolioNumber)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateFolio
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	c := &domain.Collateral{
		FolioNumber:  in.FolioNumber,
		FundName:     in.FundName,
		Units:        in.Units,
		NAVPerUnit:   in.NAVPerUnit,
		NAVUpdatedAt: time.Now().UTC(),
		LienStatus:   domain.LienNone,
	}
	c.Revalue()

	// the unique folio index backs up the pre-check under races
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, folio string) (*domain.Collateral, error) {
	c, err := u.repo.GetByFolio(ctx, folio)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

type NAVUpdate struct {
	FolioNumber string  `json:"folio_number"`
	NAVPerUnit  float64 `json:"nav_per_unit"`
}

// UpdateNAV applies a batch of NAV marks. Best-effort: unknown folios and
// per-row failures are logged and skipped; the return value is the number of
// rows actually updated. Each folio gets its own transaction with the row
// locked, so a pledge committing alongside the batch is never clobbered.
func (u *Usecase) UpdateNAV(ctx context.Context, updates []NAVUpdate) (int, error) {
	now := time.Now().UTC()
	updated := 0
	for _, up := range updates {
		if up.NAVPerUnit < 0 {
			continue
		}
		err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
			c, err := r.Collaterals.GetByFolioForUpdate(ctx, up.FolioNumber)
			if err != nil {
				return err
			}
			c.SetNAV(up.NAVPerUnit, now)
			return r.Collaterals.Save(ctx, c)
		})
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("nav update: folio %s: %v", up.FolioNumber, err)
			}
			continue
		}
		updated++
	}
	return updated, nil
}

// Release is the administrative release path. It refuses to release
// collateral still securing an active loan; closure flows release through
// their own transaction and bypass this check because the loan is no longer
// active by the time they do.
func (u *Usecase) Release(ctx context.Context, folio string) (*domain.Collateral, error) {
	var out *domain.Collateral
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Collaterals.GetByFolioForUpdate(ctx, folio)
		if err != nil {
			return err
		}
		if c.LienStatus != domain.LienMarked {
			return domain.ErrLienNotMarked
		}
		if c.HolderKind == domain.HolderLoan {
			l, err := r.Loans.GetByNumber(ctx, c.HolderRef)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil && l.Status == loanDomain.StatusActive {
				return domain.ErrActiveLoan
			}
		}

		if err := c.Release(time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Collaterals.Save(ctx, c); err != nil {
			return err
		}
		out = c
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
