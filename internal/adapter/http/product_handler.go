package http

import (
	"errors"
	"net/http"

	productDomain "lamf-backend/internal/domain/product"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProductHandler manages the product catalog directly against the
// repository; products carry no lifecycle beyond active/inactive.
type ProductHandler struct{ repo productDomain.Repository }

func NewProductHandler(repo productDomain.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

type createProductReq struct {
	ProductCode     string  `json:"product_code"      validate:"required"`
	Name            string  `json:"name"              validate:"required"`
	InterestRate    float64 `json:"interest_rate"     validate:"gte=0"`
	MinAmount       float64 `json:"min_amount"        validate:"gte=0,dec2"`
	MaxAmount       float64 `json:"max_amount"        validate:"gt=0,dec2"`
	MinTenureMonths int     `json:"min_tenure_months" validate:"gt=0"`
	MaxTenureMonths int     `json:"max_tenure_months" validate:"gt=0"`
	MaxLTV          float64 `json:"max_ltv"           validate:"gt=0,lte=100"`
	ProcessingFee   float64 `json:"processing_fee"    validate:"gte=0,dec2"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if req.MaxAmount < req.MinAmount || req.MaxTenureMonths < req.MinTenureMonths {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "max limits must not be below min limits"})
	}
	p := &productDomain.Product{
		ProductCode:     req.ProductCode,
		Name:            req.Name,
		InterestRate:    req.InterestRate,
		MinAmount:       req.MinAmount,
		MaxAmount:       req.MaxAmount,
		MinTenureMonths: req.MinTenureMonths,
		MaxTenureMonths: req.MaxTenureMonths,
		MaxLTV:          req.MaxLTV,
		ProcessingFee:   req.ProcessingFee,
		Status:          productDomain.StatusActive,
	}
	if err := h.repo.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "product code already exists"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.repo.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return writeErr(c, productDomain.ErrNotFound)
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type deactivateProductReq struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (h *ProductHandler) SetStatus(c echo.Context) error {
	var req deactivateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.repo.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return writeErr(c, productDomain.ErrNotFound)
		}
		return writeErr(c, err)
	}
	p.Status = productDomain.Status(req.Status)
	if err := h.repo.Save(c.Request().Context(), p); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
