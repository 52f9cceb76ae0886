package handler

import (
	"net/http"
	"strconv"

	"robostore/internal/config"
	"robostore/internal/domain/model"
	"robostore/internal/middleware"
	"robostore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Variant   string `json:"variant"`
}

type orderCreateRequest struct {
	Items           []orderLineRequest `json:"items"`
	ShippingAddress model.Address      `json:"shipping_address"`
	BillingAddress  *model.Address     `json:"billing_address"`
	PaymentMethod   string             `json:"payment_method"`
	CouponCode      string             `json:"coupon_code"`
	GuestEmail      string             `json:"guest_email"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//作成はゲストも可（tokenがあれば会員注文になる）
	e.POST("/orders", h.create, middleware.AuthOptional(cfg))

	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	var userID *int64
	if id, ok := getUserIDFromContext(c); ok {
		userID = &id
	}

	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Variant:   it.Variant,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		GuestEmail:      req.GuestEmail,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
