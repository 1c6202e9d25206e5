package mysql

import (
	"context"

	loanDomain "lamf-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Create persists the loan and its schedule rows in one insert via the
// gorm association.
func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save writes loan columns only; schedule rows are written through SaveEMI
// so a balance update never re-upserts the whole schedule.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *LoanRepository) SaveEMI(ctx context.Context, e *loanDomain.EMI) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *LoanRepository) GetByNumber(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("emi_number") }).
		Where("loan_number = ?", loanNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByNumberForUpdate(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("emi_number") }).
		Where("loan_number = ?", loanNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByAppNumber(ctx context.Context, appNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("emi_number") }).
		Where("app_number = ?", appNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListOpenNumbers(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("status IN ?", []loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusOverdue}).
		Order("loan_number").
		Pluck("loan_number", &out)
	return out, res.Error
}
