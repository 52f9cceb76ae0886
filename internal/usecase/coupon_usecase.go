package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"
)

// 現在時刻の注入（テストで差し替える）
type Clock interface {
	Now() time.Time
}

// クーポンの検証と見積もり。
// ここは読み取り専用で、used_countは絶対に増やさない。
// （加算するのは注文確定のOrderUsecaseだけ）
type CouponUsecase struct {
	couponRepo repo.CouponRepository
	clock      Clock
}

func NewCouponUsecase(couponRepo repo.CouponRepository, clock Clock) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo, clock: clock}
}

// 適用可能なクーポンの見積もり結果
type CouponQuote struct {
	Valid    bool             `json:"valid"`
	Discount int64            `json:"discount"`
	Code     string           `json:"code"`
	Type     model.CouponType `json:"type"`
	Value    int64            `json:"value"`
}

// Validate はチェックアウト前の「クーポン適用」プレビュー。
// 副作用なし。拒否はCouponRejectionで返す。
func (u *CouponUsecase) Validate(ctx context.Context, code string, subtotal int64) (CouponQuote, error) {
	code = NormalizeCouponCode(code)
	if code == "" {
		return CouponQuote{}, NewHTTPError(http.StatusBadRequest, "code required")
	}
	if subtotal < 0 {
		return CouponQuote{}, NewHTTPError(http.StatusBadRequest, "subtotal must be >= 0")
	}

	c, err := u.couponRepo.FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return CouponQuote{}, &CouponRejection{Code: code, Reason: CouponRejectNotFound}
	}
	if err != nil {
		return CouponQuote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	discount, rej := evaluateCoupon(c, subtotal, u.clock.Now())
	if rej != nil {
		return CouponQuote{}, rej
	}

	return CouponQuote{
		Valid:    true,
		Discount: discount,
		Code:     c.Code,
		Type:     c.Type,
		Value:    c.Value,
	}, nil
}

// 適用条件を先頭から順に評価する（最初の失敗で打ち切り）:
// active → 有効期間 → 使用回数 → 最低注文額。
// 通れば割引額を返す。
func evaluateCoupon(c model.Coupon, subtotal int64, now time.Time) (int64, *CouponRejection) {
	if !c.IsActive {
		return 0, &CouponRejection{Code: c.Code, Reason: CouponRejectNotFound}
	}
	if !c.InWindow(now) {
		return 0, &CouponRejection{Code: c.Code, Reason: CouponRejectExpired}
	}
	if c.UsedCount >= c.UsageLimit {
		return 0, &CouponRejection{Code: c.Code, Reason: CouponRejectExhausted}
	}
	if subtotal < c.MinimumAmount {
		return 0, &CouponRejection{
			Code:      c.Code,
			Reason:    CouponRejectBelowMinimum,
			Minimum:   c.MinimumAmount,
			Shortfall: c.MinimumAmount - subtotal,
		}
	}

	return couponDiscount(c, subtotal), nil
}

// コードは大文字に正規化して比較・保存する
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
