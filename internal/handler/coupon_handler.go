package handler

import (
	"net/http"

	"robostore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// クーポン適用プレビュー（チェックアウト画面用）
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/validate-coupon", h.validate)
}

type validateCouponRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

func (h *CouponHandler) validate(c echo.Context) error {
	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Validate(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
