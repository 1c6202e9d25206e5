package loan

import (
	"errors"
	"time"

	"lamf-backend/pkg/amortize"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusOverdue      Status = "overdue"
	StatusClosed       Status = "closed"
	StatusDefaulted    Status = "defaulted"
	StatusRestructured Status = "restructured"
)

type EMIStatus string

const (
	EMIPending       EMIStatus = "pending"
	EMIPaid          EMIStatus = "paid"
	EMIOverdue       EMIStatus = "overdue"
	EMIPartiallyPaid EMIStatus = "partially_paid"
)

const ClosureFullyPaid = "fully_paid"

var (
	ErrNotFound      = errors.New("loan not found")
	ErrEMINotFound   = errors.New("emi not found on loan")
	ErrClosed        = errors.New("loan is closed")
	ErrAlreadyPaid   = errors.New("emi already paid")
	ErrUnknownStatus = errors.New("unknown loan status")
)

// EMI is one installment row of a loan's schedule. Principal, Interest and
// DueDate are fixed at generation; only the status/paid fields mutate.
type EMI struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanRef          uint64     `gorm:"column:loan_ref;index:idx_loan_emis_loan" json:"-"`
	Number           int        `gorm:"column:emi_number" json:"emi_number"`
	DueDate          time.Time  `gorm:"type:date" json:"due_date"`
	Principal        float64    `gorm:"type:decimal(18,2)" json:"principal"`
	Interest         float64    `gorm:"type:decimal(18,2)" json:"interest"`
	Total            float64    `gorm:"type:decimal(18,2)" json:"total"`
	Status           EMIStatus  `gorm:"size:16;default:'pending'" json:"status"`
	PaidAmount       float64    `gorm:"type:decimal(18,2)" json:"paid_amount"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	PenaltyAmount    float64    `gorm:"type:decimal(18,2)" json:"penalty_amount"`
	PaymentReference string     `gorm:"size:64" json:"payment_reference,omitempty"`
}

func (EMI) TableName() string { return "loan_emis" }

// Loan is the funded result of a disbursed application. Created exactly once
// per application; its schedule is generated once and mutated in place by
// payment recording.
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanNumber string `gorm:"size:32;uniqueIndex:ux_loans_number" json:"loan_number"`
	AppNumber  string `gorm:"size:32;index:idx_loans_app" json:"app_number"`

	// applicant snapshot, copied from the application at disbursal
	BorrowerName  string `gorm:"size:128" json:"borrower_name"`
	BorrowerEmail string `gorm:"size:128" json:"borrower_email"`
	BorrowerPhone string `gorm:"size:32" json:"borrower_phone"`

	ProductCode       string  `gorm:"size:32" json:"product_code"`
	DisbursedAmount   float64 `gorm:"type:decimal(18,2)" json:"disbursed_amount"`
	OutstandingAmount float64 `gorm:"type:decimal(18,2)" json:"outstanding_amount"`
	TenureMonths      int     `json:"tenure_months"`
	InterestRate      float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	EMIAmount         float64 `gorm:"column:emi_amount;type:decimal(18,2)" json:"emi_amount"`
	NextEMIDate       *time.Time `gorm:"column:next_emi_date" json:"next_emi_date,omitempty"`

	TotalCollateralValue float64 `gorm:"type:decimal(18,2)" json:"total_collateral_value"`
	CurrentLTV           float64 `gorm:"column:current_ltv;type:decimal(6,2)" json:"current_ltv"`

	Status             Status     `gorm:"size:16;default:'active';index:idx_loans_status" json:"status"`
	TotalPrincipalPaid float64    `gorm:"type:decimal(18,2)" json:"total_principal_paid"`
	TotalInterestPaid  float64    `gorm:"type:decimal(18,2)" json:"total_interest_paid"`
	ClosureReason      string     `gorm:"size:32" json:"closure_reason,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`

	Schedule []EMI `gorm:"foreignKey:LoanRef" json:"emi_schedule"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Open reports whether the loan still participates in payment flows.
func (l *Loan) Open() bool { return l.Status == StatusActive || l.Status == StatusOverdue }

// EMIByNumber returns a pointer into Schedule, or nil.
func (l *Loan) EMIByNumber(n int) *EMI {
	for i := range l.Schedule {
		if l.Schedule[i].Number == n {
			return &l.Schedule[i]
		}
	}
	return nil
}

// FirstPending returns the earliest-due schedule entry still pending, or nil.
// Entries already marked overdue are not "next": the next EMI a borrower is
// asked for is the earliest one not yet due or paid.
func (l *Loan) FirstPending() *EMI {
	var first *EMI
	for i := range l.Schedule {
		e := &l.Schedule[i]
		if e.Status != EMIPending {
			continue
		}
		if first == nil || e.DueDate.Before(first.DueDate) {
			first = e
		}
	}
	return first
}

// HasPending reports whether any schedule entry is still pending.
func (l *Loan) HasPending() bool { return l.FirstPending() != nil }

// HasOverdue reports whether any schedule entry is flagged overdue.
func (l *Loan) HasOverdue() bool {
	for i := range l.Schedule {
		if l.Schedule[i].Status == EMIOverdue {
			return true
		}
	}
	return false
}

// RecomputeLTV derives CurrentLTV from the outstanding balance and the
// pledged collateral value. Zero collateral value yields zero, not a
// division error.
func (l *Loan) RecomputeLTV() {
	if l.TotalCollateralValue <= 0 {
		l.CurrentLTV = 0
		return
	}
	l.CurrentLTV = amortize.Round2(l.OutstandingAmount / l.TotalCollateralValue * 100)
}

// ValidStatus reports whether s is one of the five loan states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusOverdue, StatusClosed, StatusDefaulted, StatusRestructured:
		return true
	}
	return false
}
