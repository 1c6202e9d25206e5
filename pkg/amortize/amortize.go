// Package amortize computes equated-monthly-installment schedules.
// It is pure computation; callers own persistence and mutation of the
// resulting schedule.
package amortize

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Line is one installment of an amortization schedule. Principal, Interest
// and Total are rounded half-up to 2 decimal places at generation time.
type Line struct {
	Number    int
	DueDate   time.Time
	Principal float64
	Interest  float64
	Total     float64
}

var (
	ErrBadPrincipal = errors.New("amortize: principal must be positive")
	ErrBadTenure    = errors.New("amortize: tenure must be positive")
	ErrBadRate      = errors.New("amortize: rate must not be negative")
)

// Payment returns the EMI for the given principal, annual rate (percent) and
// tenure (months), rounded half-up to 2 decimals. A zero rate degenerates to
// straight division of principal over the tenure.
func Payment(principal, annualRatePct float64, tenureMonths int) float64 {
	monthly := annualRatePct / 12 / 100
	if monthly == 0 {
		return round2(principal / float64(tenureMonths))
	}
	factor := math.Pow(1+monthly, float64(tenureMonths))
	return round2(principal * monthly * factor / (factor - 1))
}

// Schedule generates the full installment schedule starting one calendar
// month after start. Interest per installment is the monthly rate applied to
// the running balance; the final installment's principal absorbs the rounding
// residue so that scheduled principal sums exactly to the input principal.
func Schedule(principal, annualRatePct float64, tenureMonths int, start time.Time) ([]Line, error) {
	switch {
	case principal <= 0:
		return nil, ErrBadPrincipal
	case tenureMonths <= 0:
		return nil, ErrBadTenure
	case annualRatePct < 0:
		return nil, ErrBadRate
	}

	monthly := decimal.NewFromFloat(annualRatePct).Div(decimal.NewFromInt(1200))
	emi := decimal.NewFromFloat(Payment(principal, annualRatePct, tenureMonths))

	lines := make([]Line, 0, tenureMonths)
	balance := decimal.NewFromFloat(principal).Round(2)
	for i := 1; i <= tenureMonths; i++ {
		interest := balance.Mul(monthly).Round(2)
		princ := emi.Sub(interest)
		if i == tenureMonths {
			// remaining balance, not emi-interest: keeps the schedule's
			// principal column summing exactly to the disbursed principal
			princ = balance
		}
		balance = balance.Sub(princ)
		lines = append(lines, Line{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Principal: princ.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Total:     princ.Add(interest).InexactFloat64(),
		})
	}
	return lines, nil
}

// Round2 rounds a monetary amount half-up to 2 decimal places.
func Round2(v float64) float64 { return round2(v) }

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
