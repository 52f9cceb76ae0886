package repository

import (
	"context"
	"strings"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/カテゴリ/ブランド/価格帯/ソート/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_active=true）かつ、削除されていないものだけ
	tx = tx.Where("is_active = ?", true)

	// qはnameとdescriptionを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if strings.TrimSpace(q.Brand) != "" {
		tx = tx.Where("brand ILIKE ?", strings.TrimSpace(q.Brand))
	}
	if q.Featured {
		tx = tx.Where("is_featured = ?", true)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	case "name":
		tx = tx.Order("name asc").Order("id asc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// slugで公開商品を取得
func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成。slug/skuの重複はErrConflict
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, repo.ErrConflict
		}
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":              p.Name,
		"slug":              p.Slug,
		"sku":               p.SKU,
		"description":       p.Description,
		"short_description": p.ShortDescription,
		"price":             p.Price,
		"compare_price":     p.ComparePrice,
		"stock":             p.Stock,
		"category_id":       p.CategoryID,
		"brand":             p.Brand,
		"images":            p.Images,
		"tags":              p.Tags,
		"is_active":         p.IsActive,
		"is_featured":       p.IsFeatured,
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

// 商品削除（論理削除）
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前/タグの部分一致サジェスト（公開のみ）
func (r *ProductGormRepository) Suggest(ctx context.Context, q string, limit int) ([]repo.ProductSuggestion, error) {
	like := "%" + strings.TrimSpace(q) + "%"

	var out []repo.ProductSuggestion
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("name, slug").
		Where("is_active = ?", true).
		Where("name ILIKE ? OR tags::text ILIKE ?", like, like).
		Order("name asc").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return []repo.ProductSuggestion{}, err
	}
	return out, nil
}

// 公開商品数
func (r *ProductGormRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
