package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminSaveCategoryInput struct {
	Name        string
	Description string
	Image       string
	ParentID    *int64
	IsActive    bool
}

func (u *CategoryUsecase) AdminCreateCategory(ctx context.Context, adminUserID int64, in AdminSaveCategoryInput) (model.Category, error) {
	if adminUserID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.ParentID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.ParentID); err != nil {
			if err == repo.ErrNotFound {
				return model.Category{}, NewHTTPError(http.StatusBadRequest, "parent category not found")
			}
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	now := time.Now()
	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slugify(in.Name),
		Description: in.Description,
		Image:       in.Image,
		ParentID:    in.ParentID,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err == repo.ErrConflict {
		return model.Category{}, NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) AdminUpdateCategory(ctx context.Context, adminUserID int64, categoryID int64, in AdminSaveCategoryInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.ParentID != nil && *in.ParentID == categoryID {
		return NewHTTPError(http.StatusBadRequest, "category cannot be its own parent")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          categoryID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        slugify(in.Name),
		Description: in.Description,
		Image:       in.Image,
		ParentID:    in.ParentID,
		IsActive:    in.IsActive,
		UpdatedAt:   time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		return NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CategoryUsecase) AdminDeleteCategory(ctx context.Context, adminUserID int64, categoryID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	err := u.categoryRepo.SoftDelete(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 検索サジェスト。商品とカテゴリをまとめて返す
type SearchSuggestions struct {
	Products   []repo.ProductSuggestion `json:"products"`
	Categories []model.Category         `json:"categories"`
}

type SearchUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewSearchUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *SearchUsecase {
	return &SearchUsecase{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (u *SearchUsecase) Suggest(ctx context.Context, q string) (SearchSuggestions, error) {
	//2文字未満はノイズが多いので問い合わせない
	q = strings.TrimSpace(q)
	if len(q) < 2 || len(q) > 100 {
		return SearchSuggestions{Products: []repo.ProductSuggestion{}, Categories: []model.Category{}}, nil
	}

	products, err := u.productRepo.Suggest(ctx, q, 5)
	if err != nil {
		return SearchSuggestions{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	categories, err := u.categoryRepo.Suggest(ctx, q, 3)
	if err != nil {
		return SearchSuggestions{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SearchSuggestions{Products: products, Categories: categories}, nil
}
