package repository

import (
	"context"

	"robostore/internal/domain/model"
)

type CouponRepository interface {
	// コードで取得（大文字正規化済みのコードを渡す）。
	// 期間やactiveの判定はusecase側で行う。
	FindByCode(ctx context.Context, code string) (model.Coupon, error)

	FindByID(ctx context.Context, couponID int64) (model.Coupon, error)

	List(ctx context.Context) ([]model.Coupon, error)

	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	Update(ctx context.Context, c model.Coupon) error
	Delete(ctx context.Context, couponID int64) error

	// used_count < usage_limit のときだけ+1する（条件付きUPDATE）。
	// 加算できなければfalse。
	IncrementUsageIfAvailable(ctx context.Context, couponID int64) (bool, error)
}
