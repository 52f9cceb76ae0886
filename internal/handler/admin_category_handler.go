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

type CategorySaveRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    *int64 `json:"parent_id"`
	IsActive    bool   `json:"is_active"`
}

type AdminCategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewAdminCategoryHandler(uc *usecase.CategoryUsecase) *AdminCategoryHandler {
	return &AdminCategoryHandler{uc: uc}
}

func (h *AdminCategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard(userRepo))

	admin.POST("/categories", h.create)
	admin.PUT("/categories/:id", h.update)
	admin.DELETE("/categories/:id", h.delete)
}

func (h *AdminCategoryHandler) create(c echo.Context) error {
	var req CategorySaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.AdminCreateCategory(c.Request().Context(), adminID, usecase.AdminSaveCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CategorySaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminUpdateCategory(c.Request().Context(), adminID, id, usecase.AdminSaveCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminCategoryHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeleteCategory(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
