package middleware

import (
	"net/http"

	"robostore/internal/repository"

	"github.com/labstack/echo/v4"
)

// 管理者のみ許可。
// JWTのis_adminだけで判定せず、DBの最新のフラグも確認する
// （tokenの有効期間中に権限を落とされたユーザーを弾くため）。
func AdminRoleGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawIsAdmin := c.Get(CtxIsAdminKey)
			isAdmin, ok := rawIsAdmin.(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
