package handler

import (
	"net/http"
	"strconv"

	"robostore/internal/config"
	"robostore/internal/middleware"
	"robostore/internal/repository"
	"robostore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボードと監査ログの閲覧
type AdminAnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

func NewAdminAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{uc: uc}
}

func (h *AdminAnalyticsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard(userRepo))

	admin.GET("/analytics/dashboard", h.dashboard)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminAnalyticsHandler) dashboard(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Dashboard(c.Request().Context(), adminID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminAnalyticsHandler) auditLogs(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f := repository.AuditLogFilter{
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
	}
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		f.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = l
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), adminID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
