package repository

import (
	"context"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"gorm.io/gorm"
)

type CouponGormRepository struct {
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{db: db}
}

// コードで取得（期間・activeの判定は呼び出し側）
func (r *CouponGormRepository) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if isNotFound(err) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

func (r *CouponGormRepository) FindByID(ctx context.Context, id int64) (model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

func (r *CouponGormRepository) List(ctx context.Context) ([]model.Coupon, error) {
	var items []model.Coupon
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return []model.Coupon{}, err
	}
	return items, nil
}

// codeの重複はErrConflict
func (r *CouponGormRepository) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Coupon{}, repo.ErrConflict
		}
		return model.Coupon{}, err
	}
	return c, nil
}

// used_countはここでは触らない（加算はIncrementUsageIfAvailableのみ）。
// codeの重複はErrConflict
func (r *CouponGormRepository) Update(ctx context.Context, c model.Coupon) error {
	res := r.db.WithContext(ctx).Model(&model.Coupon{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"code":             c.Code,
		"type":             c.Type,
		"value":            c.Value,
		"minimum_amount":   c.MinimumAmount,
		"maximum_discount": c.MaximumDiscount,
		"usage_limit":      c.UsageLimit,
		"is_active":        c.IsActive,
		"valid_from":       c.ValidFrom,
		"valid_until":      c.ValidUntil,
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

func (r *CouponGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Coupon{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 残り回数があるときだけ+1する。
// 同時実行でも上限を超えない（チェックと加算が1つのUPDATE）。
func (r *CouponGormRepository) IncrementUsageIfAvailable(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ? AND used_count < usage_limit", id).
		Update("used_count", gorm.Expr("used_count + 1"))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
