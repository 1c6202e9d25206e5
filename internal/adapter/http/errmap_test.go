package http

import (
	"errors"
	"net/http"
	"testing"

	appDomain "lamf-backend/internal/domain/application"
	collDomain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	productDomain "lamf-backend/internal/domain/product"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{productDomain.ErrNotFound, http.StatusNotFound},
		{collDomain.ErrNotFound, http.StatusNotFound},
		{appDomain.ErrNotFound, http.StatusNotFound},
		{loanDomain.ErrNotFound, http.StatusNotFound},
		{loanDomain.ErrEMINotFound, http.StatusNotFound},

		{collDomain.ErrDuplicateFolio, http.StatusConflict},
		{collDomain.ErrLienMarked, http.StatusConflict},
		{collDomain.ErrActiveLoan, http.StatusConflict},
		{appDomain.ErrInvalidTransition, http.StatusConflict},
		{appDomain.ErrNotDraft, http.StatusConflict},
		{loanDomain.ErrClosed, http.StatusConflict},
		{loanDomain.ErrAlreadyPaid, http.StatusConflict},

		{appDomain.ErrProductInactive, http.StatusUnprocessableEntity},
		{appDomain.ErrAmountOutOfRange, http.StatusUnprocessableEntity},
		{appDomain.ErrTenureOutOfRange, http.StatusUnprocessableEntity},
		{appDomain.ErrCollateralUnavailable, http.StatusUnprocessableEntity},
		{appDomain.ErrLTVExceeded, http.StatusUnprocessableEntity},
		{loanDomain.ErrUnknownStatus, http.StatusUnprocessableEntity},

		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

// wrapped errors still map through errors.Is
func TestStatusFor_Wrapped(t *testing.T) {
	err := &wrapErr{inner: loanDomain.ErrAlreadyPaid}
	if got := statusFor(err); got != http.StatusConflict {
		t.Fatalf("wrapped statusFor = %d, want 409", got)
	}
}

type wrapErr struct{ inner error }

func (w *wrapErr) Error() string { return "payment: " + w.inner.Error() }
func (w *wrapErr) Unwrap() error { return w.inner }
