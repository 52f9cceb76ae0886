package usecase

import (
	"fmt"
	"net/http"

	"robostore/internal/domain/model"
)

// 金額はすべて最小通貨単位（セント）のint64で扱う。
// 割り算の丸めはすべて四捨五入（round half up）に統一する。
const (
	//税率（basis points、1000 = 10%）
	taxRateBasisPoints = 1000

	//小計がこの額（セント）を超えたら送料無料。ちょうどなら有料
	freeShippingOverCents = 10_000

	//固定送料（セント）
	flatShippingCents = 1_000
)

type Totals struct {
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals は税・送料・合計を計算する純粋関数。
// 送料は割引前の小計で判定する（割引で閾値を割っても送料は変わらない）。
// total = subtotal + tax + shipping - discount。
func ComputeTotals(subtotal, discount int64) (Totals, error) {
	if subtotal < 0 {
		return Totals{}, NewHTTPError(http.StatusBadRequest, "subtotal must be >= 0")
	}
	if discount < 0 {
		return Totals{}, NewHTTPError(http.StatusBadRequest, "discount must be >= 0")
	}
	if discount > subtotal {
		return Totals{}, NewHTTPError(http.StatusBadRequest, "discount must be <= subtotal")
	}

	tax := roundDiv(subtotal*taxRateBasisPoints, 10_000)

	var shipping int64 = flatShippingCents
	if subtotal > freeShippingOverCents {
		shipping = 0
	}

	return Totals{
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping - discount,
	}, nil
}

// クーポン1枚ぶんの割引額（セント）。
// percentage: subtotal * value / 100、MaximumDiscountで上限。
// fixed: value（ただし小計を超えない）。
func couponDiscount(c model.Coupon, subtotal int64) int64 {
	var d int64
	switch c.Type {
	case model.CouponTypePercentage:
		d = roundDiv(subtotal*c.Value, 100)
		if c.MaximumDiscount > 0 && d > c.MaximumDiscount {
			d = c.MaximumDiscount
		}
	case model.CouponTypeFixed:
		d = c.Value
	}

	//合計がマイナスにならないよう小計で頭打ち
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// 非負整数の四捨五入つき割り算
func roundDiv(n, d int64) int64 {
	return (n + d/2) / d
}

// セントを "$12.34" 形式にする（メッセージ用）
func formatCents(c int64) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
