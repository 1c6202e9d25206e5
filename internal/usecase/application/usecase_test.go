package application

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "lamf-backend/internal/domain/application"
	collDomain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	productDomain "lamf-backend/internal/domain/product"
	"lamf-backend/internal/testutil/applicationmock"
	"lamf-backend/internal/testutil/collateralmock"
	"lamf-backend/internal/testutil/loanmock"
	"lamf-backend/internal/testutil/productmock"
	"lamf-backend/internal/testutil/uowmock"
	"lamf-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// fixture wires an in-memory world behind the mocks: one product, a set of
// collateral folios, and stores capturing created applications and loans.
type fixture struct {
	product     *productDomain.Product
	collaterals map[string]*collDomain.Collateral
	apps        map[string]*domain.Application
	loans       map[string]*loanDomain.Loan
	uc          *Usecase
}

func newFixture() *fixture {
	f := &fixture{
		product: &productDomain.Product{
			ProductCode:     "LAMF-STD",
			InterestRate:    12,
			MinAmount:       50000,
			MaxAmount:       5000000,
			MinTenureMonths: 6,
			MaxTenureMonths: 36,
			MaxLTV:          50,
			Status:          productDomain.StatusActive,
		},
		collaterals: map[string]*collDomain.Collateral{},
		apps:        map[string]*domain.Application{},
		loans:       map[string]*loanDomain.Loan{},
	}

	products := &productmock.Repo{
		GetByCodeFn: func(ctx context.Context, code string) (*productDomain.Product, error) {
			if code == f.product.ProductCode {
				return f.product, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	collaterals := &collateralmock.Repo{
		GetByFoliosFn: func(ctx context.Context, folios []string) ([]collDomain.Collateral, error) {
			var out []collDomain.Collateral
			for _, fo := range folios {
				if c, ok := f.collaterals[fo]; ok {
					out = append(out, *c)
				}
			}
			return out, nil
		},
		GetByHolderFn: func(ctx context.Context, kind collDomain.HolderKind, ref string) ([]collDomain.Collateral, error) {
			var out []collDomain.Collateral
			for _, c := range f.collaterals {
				if c.HolderKind == kind && c.HolderRef == ref {
					out = append(out, *c)
				}
			}
			return out, nil
		},
		SaveFn: func(ctx context.Context, c *collDomain.Collateral) error {
			cp := *c
			f.collaterals[c.FolioNumber] = &cp
			return nil
		},
	}
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			f.apps[a.AppNumber] = a
			return nil
		},
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			f.apps[a.AppNumber] = a
			return nil
		},
		GetByNumberForUpdateFn: func(ctx context.Context, n string) (*domain.Application, error) {
			if a, ok := f.apps[n]; ok {
				return a, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		DeleteFn: func(ctx context.Context, a *domain.Application) error {
			delete(f.apps, a.AppNumber)
			return nil
		},
	}
	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *loanDomain.Loan) error {
			f.loans[l.LoanNumber] = l
			return nil
		},
	}

	tx := uowmock.New(uow.Repos{
		Products:     products,
		Collaterals:  collaterals,
		Applications: apps,
		Loans:        loans,
	})
	f.uc = NewUsecase(apps, collaterals, tx)
	return f
}

func (f *fixture) addFolio(folio string, value float64) {
	f.collaterals[folio] = &collDomain.Collateral{
		FolioNumber:  folio,
		Units:        value,
		NAVPerUnit:   1,
		CurrentValue: value,
		LienStatus:   collDomain.LienNone,
	}
}

func validInput(folios ...string) CreateInput {
	return CreateInput{
		Applicant: Applicant{
			Name:        "Asha Rao",
			Email:       "asha@example.com",
			Phone:       "+911234567890",
			TaxID:       "ABCDE1234F",
			DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		ProductCode:     "LAMF-STD",
		RequestedAmount: 500000,
		TenureMonths:    24,
		Folios:          folios,
	}
}

func TestCreate_SuccessPledgesCollateral(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	a, err := f.uc.Create(context.Background(), validInput("MF-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != domain.StatusSubmitted {
		t.Fatalf("Status = %s, want submitted", a.Status)
	}
	if a.InterestRate != 12 {
		t.Fatalf("InterestRate = %.2f, want snapshot 12", a.InterestRate)
	}
	if a.LTV != 41.67 {
		t.Fatalf("LTV = %.2f, want 41.67", a.LTV)
	}
	if a.TotalCollateralValue != 1200000 {
		t.Fatalf("TotalCollateralValue = %.2f", a.TotalCollateralValue)
	}
	if a.SubmittedAt == nil {
		t.Fatal("SubmittedAt not stamped")
	}

	c := f.collaterals["MF-1"]
	if c.LienStatus != collDomain.LienMarked || c.HolderKind != collDomain.HolderApplication || c.HolderRef != a.AppNumber {
		t.Fatalf("collateral not pledged to application: %+v", c)
	}
}

func TestCreate_ProductInactive(t *testing.T) {
	f := newFixture()
	f.product.Status = productDomain.StatusInactive
	f.addFolio("MF-1", 1200000)

	_, err := f.uc.Create(context.Background(), validInput("MF-1"))
	if !errors.Is(err, domain.ErrProductInactive) {
		t.Fatalf("got %v, want ErrProductInactive", err)
	}
}

func TestCreate_AmountAndTenureLimits(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 100000000)

	in := validInput("MF-1")
	in.RequestedAmount = 49999
	if _, err := f.uc.Create(context.Background(), in); !errors.Is(err, domain.ErrAmountOutOfRange) {
		t.Fatalf("below min: got %v, want ErrAmountOutOfRange", err)
	}

	in = validInput("MF-1")
	in.RequestedAmount = 5000001
	if _, err := f.uc.Create(context.Background(), in); !errors.Is(err, domain.ErrAmountOutOfRange) {
		t.Fatalf("above max: got %v, want ErrAmountOutOfRange", err)
	}

	in = validInput("MF-1")
	in.TenureMonths = 37
	if _, err := f.uc.Create(context.Background(), in); !errors.Is(err, domain.ErrTenureOutOfRange) {
		t.Fatalf("tenure: got %v, want ErrTenureOutOfRange", err)
	}
}

func TestCreate_LTVBoundary(t *testing.T) {
	f := newFixture()
	// requested 500000 against 1000000 → exactly maxLTV 50: accepted
	f.addFolio("MF-1", 1000000)
	if _, err := f.uc.Create(context.Background(), validInput("MF-1")); err != nil {
		t.Fatalf("ltv == max must pass, got %v", err)
	}

	f = newFixture()
	f.addFolio("MF-1", 999000) // 50.05: rejected
	if _, err := f.uc.Create(context.Background(), validInput("MF-1")); !errors.Is(err, domain.ErrLTVExceeded) {
		t.Fatalf("got %v, want ErrLTVExceeded", err)
	}
}

func TestCreate_CollateralMissingOrPledged(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	if _, err := f.uc.Create(context.Background(), validInput("MF-1", "MF-404")); !errors.Is(err, domain.ErrCollateralUnavailable) {
		t.Fatalf("missing folio: got %v, want ErrCollateralUnavailable", err)
	}

	_ = f.collaterals["MF-1"].Pledge(collDomain.HolderApplication, "APP-OTHER", time.Now().UTC())
	if _, err := f.uc.Create(context.Background(), validInput("MF-1")); !errors.Is(err, domain.ErrCollateralUnavailable) {
		t.Fatalf("pledged folio: got %v, want ErrCollateralUnavailable", err)
	}
}

func TestTransition_InvalidMove(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)
	a, err := f.uc.Create(context.Background(), validInput("MF-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, _, err = f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusDisbursed})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("submitted→disbursed: got %v, want ErrInvalidTransition", err)
	}
}

func TestTransition_RejectedReleasesCollateral(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)
	a, _ := f.uc.Create(context.Background(), validInput("MF-1"))

	if _, _, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusRejected, Remarks: "insufficient income"}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	c := f.collaterals["MF-1"]
	if c.LienStatus != collDomain.LienReleased || c.HolderRef != "" {
		t.Fatalf("collateral not released on rejection: %+v", c)
	}
	if f.apps[a.AppNumber].Remarks != "insufficient income" {
		t.Fatalf("remarks not recorded")
	}
}

func TestTransition_DisbursalCreatesLoan(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)
	a, _ := f.uc.Create(context.Background(), validInput("MF-1"))

	steps := []domain.Status{domain.StatusUnderReview, domain.StatusApproved}
	for _, s := range steps {
		if _, _, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: s}); err != nil {
			t.Fatalf("to %s: %v", s, err)
		}
	}

	app, l, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusDisbursed})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if app.Status != domain.StatusDisbursed {
		t.Fatalf("application status = %s", app.Status)
	}
	if l == nil {
		t.Fatal("disbursal returned no loan")
	}
	if l.DisbursedAmount != 500000 || l.OutstandingAmount != 500000 {
		t.Fatalf("amounts: disbursed %.2f outstanding %.2f", l.DisbursedAmount, l.OutstandingAmount)
	}
	if l.EMIAmount != 23536.74 {
		t.Fatalf("EMIAmount = %.2f, want 23536.74", l.EMIAmount)
	}
	if len(l.Schedule) != 24 {
		t.Fatalf("schedule length = %d, want 24", len(l.Schedule))
	}
	if l.NextEMIDate == nil || !l.NextEMIDate.Equal(l.Schedule[0].DueDate) {
		t.Fatalf("NextEMIDate = %v, want first due %v", l.NextEMIDate, l.Schedule[0].DueDate)
	}
	if l.CurrentLTV != 41.67 {
		t.Fatalf("CurrentLTV = %.2f, want 41.67", l.CurrentLTV)
	}
	if l.Status != loanDomain.StatusActive {
		t.Fatalf("loan status = %s, want active", l.Status)
	}

	c := f.collaterals["MF-1"]
	if c.LienStatus != collDomain.LienMarked {
		t.Fatalf("lien must stay marked through disbursal, got %s", c.LienStatus)
	}
	if c.HolderKind != collDomain.HolderLoan || c.HolderRef != l.LoanNumber {
		t.Fatalf("collateral holder after disbursal: %s %s", c.HolderKind, c.HolderRef)
	}
}

func TestTransition_ApprovedAmountUsedAtDisbursal(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)
	a, _ := f.uc.Create(context.Background(), validInput("MF-1"))

	_, _, _ = f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusUnderReview})
	if _, _, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusApproved, ApprovedAmount: 400000}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, l, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusDisbursed})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if l.DisbursedAmount != 400000 {
		t.Fatalf("DisbursedAmount = %.2f, want approved 400000", l.DisbursedAmount)
	}
}

func TestDelete_OnlyDrafts(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	in := validInput("MF-1")
	in.Draft = true
	a, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if a.Status != domain.StatusDraft {
		t.Fatalf("Status = %s, want draft", a.Status)
	}

	if err := f.uc.Delete(context.Background(), a.AppNumber); err != nil {
		t.Fatalf("Delete draft: %v", err)
	}
	if _, ok := f.apps[a.AppNumber]; ok {
		t.Fatal("draft not deleted")
	}
	if c := f.collaterals["MF-1"]; c.LienStatus != collDomain.LienReleased {
		t.Fatalf("draft deletion must release collateral, got %s", c.LienStatus)
	}

	// non-draft
	f = newFixture()
	f.addFolio("MF-1", 1200000)
	a, _ = f.uc.Create(context.Background(), validInput("MF-1"))
	if err := f.uc.Delete(context.Background(), a.AppNumber); !errors.Is(err, domain.ErrNotDraft) {
		t.Fatalf("got %v, want ErrNotDraft", err)
	}
}

func TestTransition_SubmitRevalidatesProduct(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	in := validInput("MF-1")
	in.Draft = true
	a, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	// product retired while the draft sat idle
	f.product.Status = productDomain.StatusInactive

	_, _, err = f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusSubmitted})
	if !errors.Is(err, domain.ErrProductInactive) {
		t.Fatalf("got %v, want ErrProductInactive", err)
	}
	if f.apps[a.AppNumber].Status != domain.StatusDraft {
		t.Fatalf("draft status mutated to %s on failed submit", f.apps[a.AppNumber].Status)
	}
}

func TestTransition_SubmitRevalidatesLTV(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	in := validInput("MF-1")
	in.Draft = true
	a, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	// NAV crash: 500000 against 900000 is 55.56%, over the 50% cap
	f.collaterals["MF-1"].CurrentValue = 900000

	_, _, err = f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusSubmitted})
	if !errors.Is(err, domain.ErrLTVExceeded) {
		t.Fatalf("got %v, want ErrLTVExceeded", err)
	}
}

func TestTransition_SubmitRefreshesCollateralSnapshot(t *testing.T) {
	f := newFixture()
	f.addFolio("MF-1", 1200000)

	in := validInput("MF-1")
	in.Draft = true
	a, err := f.uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	// NAV moved but still within the cap
	f.collaterals["MF-1"].CurrentValue = 1100000

	got, _, err := f.uc.Transition(context.Background(), a.AppNumber, TransitionInput{To: domain.StatusSubmitted})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got.Status != domain.StatusSubmitted {
		t.Fatalf("Status = %s, want submitted", got.Status)
	}
	if got.TotalCollateralValue != 1100000 {
		t.Fatalf("TotalCollateralValue = %.2f, want refreshed 1100000", got.TotalCollateralValue)
	}
	if got.LTV != 45.45 {
		t.Fatalf("LTV = %.2f, want 45.45", got.LTV)
	}
	if got.SubmittedAt == nil {
		t.Fatal("SubmittedAt not stamped")
	}
}
