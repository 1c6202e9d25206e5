package product

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var ErrNotFound = errors.New("loan product not found")

// Product is the lending configuration a loan application is validated
// against. Treated as immutable for the lifetime of an application: the
// application snapshots the interest rate at creation time.
type Product struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	ProductCode     string    `gorm:"size:32;uniqueIndex:ux_products_code" json:"product_code"`
	Name            string    `gorm:"size:128" json:"name"`
	InterestRate    float64   `gorm:"type:decimal(6,4)" json:"interest_rate"`
	MinAmount       float64   `gorm:"type:decimal(18,2)" json:"min_amount"`
	MaxAmount       float64   `gorm:"type:decimal(18,2)" json:"max_amount"`
	MinTenureMonths int       `gorm:"column:min_tenure_months" json:"min_tenure_months"`
	MaxTenureMonths int       `gorm:"column:max_tenure_months" json:"max_tenure_months"`
	MaxLTV          float64   `gorm:"column:max_ltv;type:decimal(6,2)" json:"max_ltv"`
	ProcessingFee   float64   `gorm:"type:decimal(18,2)" json:"processing_fee"`
	Status          Status    `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

func (p *Product) Active() bool { return p.Status == StatusActive }
