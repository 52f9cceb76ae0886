package repository

import (
	"context"
	"strings"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 公開カテゴリの一覧
func (r *CategoryGormRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// slugの重複はErrConflict
func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, repo.ErrConflict
		}
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"image":       c.Image,
		"parent_id":   c.ParentID,
		"is_active":   c.IsActive,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前の部分一致サジェスト（公開のみ）
func (r *CategoryGormRepository) Suggest(ctx context.Context, q string, limit int) ([]model.Category, error) {
	like := "%" + strings.TrimSpace(q) + "%"

	var items []model.Category
	err := r.db.WithContext(ctx).
		Select("id, name, slug").
		Where("is_active = ?", true).
		Where("name ILIKE ?", like).
		Order("name asc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Category{}, err
	}
	return items, nil
}
