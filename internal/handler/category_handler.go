package handler

import (
	"net/http"

	"robostore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /categories と /search の公開API
type CategoryHandler struct {
	uc       *usecase.CategoryUsecase
	searchUC *usecase.SearchUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase, searchUC *usecase.SearchUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc, searchUC: searchUC}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.list)
	e.GET("/search/suggestions", h.suggest)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) suggest(c echo.Context) error {
	out, err := h.searchUC.Suggest(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
