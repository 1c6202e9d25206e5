package http

import (
	"net/http"

	collUC "lamf-backend/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
)

type CollateralHandler struct{ uc *collUC.Usecase }

func NewCollateralHandler(uc *collUC.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

type registerCollateralReq struct {
	FolioNumber string  `json:"folio_number" validate:"required,folio"`
	FundName    string  `json:"fund_name"    validate:"required"`
	Units       float64 `json:"units"        validate:"gte=0"`
	NAVPerUnit  float64 `json:"nav_per_unit" validate:"gte=0"`
}

func (h *CollateralHandler) Register(c echo.Context) error {
	var req registerCollateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Register(c.Request().Context(), collUC.RegisterInput{
		FolioNumber: req.FolioNumber,
		FundName:    req.FundName,
		Units:       req.Units,
		NAVPerUnit:  req.NAVPerUnit,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CollateralHandler) Get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("folio"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type navUpdateReq struct {
	Updates []collUC.NAVUpdate `json:"updates" validate:"required,min=1,dive"`
}

func (h *CollateralHandler) UpdateNAV(c echo.Context) error {
	var req navUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	n, err := h.uc.UpdateNAV(c.Request().Context(), req.Updates)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": n})
}

func (h *CollateralHandler) Release(c echo.Context) error {
	out, err := h.uc.Release(c.Request().Context(), c.Param("folio"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
