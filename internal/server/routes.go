package server

import (
	"net/http"

	"robostore/internal/config"
	"robostore/internal/handler"
	"robostore/internal/repository"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なhandler一式
type Deps struct {
	Product        *handler.ProductHandler
	Category       *handler.CategoryHandler
	Coupon         *handler.CouponHandler
	Order          *handler.OrderHandler
	Auth           *handler.AuthHandler
	AdminProduct   *handler.AdminProductHandler
	AdminCategory  *handler.AdminCategoryHandler
	AdminCoupon    *handler.AdminCouponHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminAnalytics *handler.AdminAnalyticsHandler

	UserRepo repository.UserRepository
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, d Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開API
	d.Product.RegisterRoutes(e)
	d.Category.RegisterRoutes(e)
	d.Coupon.RegisterRoutes(e)
	d.Order.RegisterRoutes(e, cfg)
	d.Auth.RegisterRoutes(e, cfg)

	//管理API（各handlerが/adminグループに認可付きで登録する）
	d.AdminProduct.RegisterRoutes(e, cfg, d.UserRepo)
	d.AdminCategory.RegisterRoutes(e, cfg, d.UserRepo)
	d.AdminCoupon.RegisterRoutes(e, cfg, d.UserRepo)
	d.AdminOrder.RegisterRoutes(e, cfg, d.UserRepo)
	d.AdminAnalytics.RegisterRoutes(e, cfg, d.UserRepo)
}
