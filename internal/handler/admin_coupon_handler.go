package handler

import (
	"net/http"
	"strconv"
	"time"

	"robostore/internal/config"
	"robostore/internal/middleware"
	"robostore/internal/repository"
	"robostore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CouponSaveRequest struct {
	Code            string    `json:"code"`
	Type            string    `json:"type"`
	Value           int64     `json:"value"`
	MinimumAmount   int64     `json:"minimum_amount"`
	MaximumDiscount int64     `json:"maximum_discount"`
	UsageLimit      int64     `json:"usage_limit"`
	IsActive        bool      `json:"is_active"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
}

type AdminCouponHandler struct {
	uc *usecase.AdminCouponUsecase
}

func NewAdminCouponHandler(uc *usecase.AdminCouponUsecase) *AdminCouponHandler {
	return &AdminCouponHandler{uc: uc}
}

func (h *AdminCouponHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard(userRepo))

	admin.GET("/coupons", h.list)
	admin.POST("/coupons", h.create)
	admin.PUT("/coupons/:id", h.update)
	admin.DELETE("/coupons/:id", h.delete)
}

func toCouponInput(req CouponSaveRequest) usecase.AdminSaveCouponInput {
	return usecase.AdminSaveCouponInput{
		Code:            req.Code,
		Type:            req.Type,
		Value:           req.Value,
		MinimumAmount:   req.MinimumAmount,
		MaximumDiscount: req.MaximumDiscount,
		UsageLimit:      req.UsageLimit,
		IsActive:        req.IsActive,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
	}
}

func (h *AdminCouponHandler) list(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), adminID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCouponHandler) create(c echo.Context) error {
	var req CouponSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Create(c.Request().Context(), adminID, toCouponInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCouponHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CouponSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Update(c.Request().Context(), adminID, id, toCouponInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminCouponHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
