package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"
)

// クーポンの管理（作成・編集・削除は管理者のみ）
type AdminCouponUsecase struct {
	couponRepo repo.CouponRepository
}

func NewAdminCouponUsecase(couponRepo repo.CouponRepository) *AdminCouponUsecase {
	return &AdminCouponUsecase{couponRepo: couponRepo}
}

type AdminSaveCouponInput struct {
	Code            string
	Type            string
	Value           int64
	MinimumAmount   int64
	MaximumDiscount int64
	UsageLimit      int64
	IsActive        bool
	ValidFrom       time.Time
	ValidUntil      time.Time
}

func validateCouponInput(in AdminSaveCouponInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return NewHTTPError(http.StatusBadRequest, "code required")
	}
	switch model.CouponType(in.Type) {
	case model.CouponTypePercentage, model.CouponTypeFixed:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	if in.Value <= 0 {
		return NewHTTPError(http.StatusBadRequest, "value must be > 0")
	}
	if model.CouponType(in.Type) == model.CouponTypePercentage && in.Value > 100 {
		return NewHTTPError(http.StatusBadRequest, "percentage value must be <= 100")
	}
	if in.MinimumAmount < 0 {
		return NewHTTPError(http.StatusBadRequest, "minimum_amount must be >= 0")
	}
	if in.MaximumDiscount < 0 {
		return NewHTTPError(http.StatusBadRequest, "maximum_discount must be >= 0")
	}
	if in.UsageLimit < 1 {
		return NewHTTPError(http.StatusBadRequest, "usage_limit must be >= 1")
	}
	if in.ValidFrom.IsZero() || in.ValidUntil.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "valid_from and valid_until required")
	}
	if in.ValidUntil.Before(in.ValidFrom) {
		return NewHTTPError(http.StatusBadRequest, "valid_until must be after valid_from")
	}
	return nil
}

func (u *AdminCouponUsecase) List(ctx context.Context, adminUserID int64) ([]model.Coupon, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.couponRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AdminCouponUsecase) Create(ctx context.Context, adminUserID int64, in AdminSaveCouponInput) (model.Coupon, error) {
	if adminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCouponInput(in); err != nil {
		return model.Coupon{}, err
	}

	now := time.Now()
	c, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:            NormalizeCouponCode(in.Code),
		Type:            model.CouponType(in.Type),
		Value:           in.Value,
		MinimumAmount:   in.MinimumAmount,
		MaximumDiscount: in.MaximumDiscount,
		UsageLimit:      in.UsageLimit,
		IsActive:        in.IsActive,
		ValidFrom:       in.ValidFrom,
		ValidUntil:      in.ValidUntil,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err == repo.ErrConflict {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "code already exists")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCouponUsecase) Update(ctx context.Context, adminUserID int64, couponID int64, in AdminSaveCouponInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid coupon id")
	}
	if err := validateCouponInput(in); err != nil {
		return err
	}

	//used_countはここでは触らない（加算は注文時の条件付きUPDATEのみ）
	err := u.couponRepo.Update(ctx, model.Coupon{
		ID:              couponID,
		Code:            NormalizeCouponCode(in.Code),
		Type:            model.CouponType(in.Type),
		Value:           in.Value,
		MinimumAmount:   in.MinimumAmount,
		MaximumDiscount: in.MaximumDiscount,
		UsageLimit:      in.UsageLimit,
		IsActive:        in.IsActive,
		ValidFrom:       in.ValidFrom,
		ValidUntil:      in.ValidUntil,
		UpdatedAt:       time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		return NewHTTPError(http.StatusConflict, "code already exists")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminCouponUsecase) Delete(ctx context.Context, adminUserID int64, couponID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid coupon id")
	}

	err := u.couponRepo.Delete(ctx, couponID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
