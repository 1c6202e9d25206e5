package application

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusDisbursed   Status = "disbursed"
	StatusClosed      Status = "closed"
)

var (
	ErrNotFound              = errors.New("application not found")
	ErrInvalidTransition     = errors.New("invalid application status transition")
	ErrProductInactive       = errors.New("loan product is not active")
	ErrAmountOutOfRange      = errors.New("requested amount outside product limits")
	ErrTenureOutOfRange      = errors.New("tenure outside product limits")
	ErrCollateralUnavailable = errors.New("collateral missing or already pledged")
	ErrLTVExceeded           = errors.New("loan-to-value exceeds product maximum")
	ErrNotDraft              = errors.New("application is no longer a draft")
)

// transitions is the strict table of allowed status moves. Anything not
// listed here, self-transitions included, is rejected.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusDisbursed, StatusRejected},
	StatusDisbursed:   {StatusClosed},
	// rejected and closed are terminal
}

// CanTransition reports whether from → to is an allowed move.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Application is a request for a loan secured by pledged collateral. It is
// mutable only while draft or submitted; from under_review onward only the
// status-transition fields change, and rejected/closed are terminal.
type Application struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	AppNumber string `gorm:"size:32;uniqueIndex:ux_applications_number" json:"app_number"`

	ApplicantName  string    `gorm:"size:128" json:"applicant_name"`
	Email          string    `gorm:"size:128" json:"email"`
	Phone          string    `gorm:"size:32" json:"phone"`
	TaxID          string    `gorm:"column:tax_id;size:32" json:"tax_id"`
	Address        string    `gorm:"type:text" json:"address"`
	DateOfBirth    time.Time `gorm:"type:date" json:"date_of_birth"`

	ProductCode     string  `gorm:"size:32;index:idx_applications_product" json:"product_code"`
	RequestedAmount float64 `gorm:"type:decimal(18,2)" json:"requested_amount"`
	ApprovedAmount  float64 `gorm:"type:decimal(18,2)" json:"approved_amount"`
	TenureMonths    int     `json:"tenure_months"`
	// InterestRate is snapshotted from the product at creation time and
	// never re-read afterwards.
	InterestRate float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`

	TotalCollateralValue float64 `gorm:"type:decimal(18,2)" json:"total_collateral_value"`
	LTV                  float64 `gorm:"column:ltv;type:decimal(6,2)" json:"ltv"`

	Status  Status `gorm:"size:16;default:'submitted';index:idx_applications_status" json:"status"`
	Remarks string `gorm:"type:text" json:"remarks"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	DisbursedAt *time.Time `json:"disbursed_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }

// StampStage records the wall-clock time a stage was entered.
func (a *Application) StampStage(s Status, at time.Time) {
	t := at
	switch s {
	case StatusSubmitted:
		a.SubmittedAt = &t
	case StatusUnderReview:
		a.ReviewedAt = &t
	case StatusApproved:
		a.ApprovedAt = &t
	case StatusRejected:
		a.RejectedAt = &t
	case StatusDisbursed:
		a.DisbursedAt = &t
	case StatusClosed:
		a.ClosedAt = &t
	}
}

// DisbursalAmount is the principal a loan created from this application
// receives: the approved amount when set, otherwise the requested amount.
func (a *Application) DisbursalAmount() float64 {
	if a.ApprovedAmount > 0 {
		return a.ApprovedAmount
	}
	return a.RequestedAmount
}
