package http

import (
	"net/http"
	"time"

	loanDomain "lamf-backend/internal/domain/loan"
	loanUC "lamf-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type recordPaymentReq struct {
	EMINumber int     `json:"emi_number"   validate:"gt=0"`
	Amount    float64 `json:"amount"       validate:"gt=0,dec2"`
	Reference string  `json:"reference"    validate:"required"`
	// Accept canonical date `YYYY-MM-DD`; empty means "now"
	PaidDate string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) RecordPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := loanUC.RecordPaymentInput{
		LoanNumber: c.Param("loan_number"),
		EMINumber:  req.EMINumber,
		Amount:     req.Amount,
		Reference:  req.Reference,
	}
	if req.PaidDate != "" {
		t, _ := time.Parse("2006-01-02", req.PaidDate)
		in.PaidAt = &t
	}
	out, err := h.uc.RecordPayment(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) SweepOverdue(c echo.Context) error {
	res, err := h.uc.MarkOverdue(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_number"), loanDomain.Status(req.Status))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
