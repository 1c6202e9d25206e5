package http

import (
	"net/http"
	"time"

	appDomain "lamf-backend/internal/domain/application"
	appUC "lamf-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *appUC.Usecase }

func NewApplicationHandler(uc *appUC.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createApplicationReq struct {
	ApplicantName   string   `json:"applicant_name"   validate:"required"`
	Email           string   `json:"email"            validate:"required,email"`
	Phone           string   `json:"phone"            validate:"required"`
	TaxID           string   `json:"tax_id"           validate:"required"`
	Address         string   `json:"address"`
	DateOfBirth     string   `json:"date_of_birth"    validate:"required,datetime=2006-01-02"`
	ProductCode     string   `json:"product_code"     validate:"required"`
	RequestedAmount float64  `json:"requested_amount" validate:"gt=0,dec2"`
	TenureMonths    int      `json:"tenure_months"    validate:"gt=0"`
	Folios          []string `json:"folios"           validate:"dive,folio"`
	Draft           bool     `json:"draft"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)

	out, err := h.uc.Create(c.Request().Context(), appUC.CreateInput{
		Applicant: appUC.Applicant{
			Name:        req.ApplicantName,
			Email:       req.Email,
			Phone:       req.Phone,
			TaxID:       req.TaxID,
			Address:     req.Address,
			DateOfBirth: dob,
		},
		ProductCode:     req.ProductCode,
		RequestedAmount: req.RequestedAmount,
		TenureMonths:    req.TenureMonths,
		Folios:          req.Folios,
		Draft:           req.Draft,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	a, held, err := h.uc.Get(c.Request().Context(), c.Param("app_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"application": a,
		"collaterals": held,
	})
}

type transitionReq struct {
	Status         string  `json:"status"          validate:"required"`
	Remarks        string  `json:"remarks"`
	ApprovedAmount float64 `json:"approved_amount" validate:"gte=0,dec2"`
}

func (h *ApplicationHandler) Transition(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, l, err := h.uc.Transition(c.Request().Context(), c.Param("app_number"), appUC.TransitionInput{
		To:             appDomain.Status(req.Status),
		Remarks:        req.Remarks,
		ApprovedAmount: req.ApprovedAmount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	resp := map[string]any{"application": a}
	if l != nil {
		resp["loan"] = l
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("app_number")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
