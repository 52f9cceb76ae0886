package usecase

import (
	"testing"

	"robostore/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_TaxAndIdentity(t *testing.T) {
	out, err := ComputeTotals(20_000, 2_500)
	assert.NoError(t, err)

	//10%課税、$100超えで送料無料
	assert.Equal(t, int64(2_000), out.Tax)
	assert.Equal(t, int64(0), out.Shipping)

	// total = subtotal + tax + shipping - discount
	assert.Equal(t, int64(20_000+2_000+0-2_500), out.Total)
}

func TestComputeTotals_FreeShippingBoundary(t *testing.T) {
	//ちょうど$100は送料有料
	at, err := ComputeTotals(10_000, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_000), at.Shipping)

	//1セントでも超えたら無料
	over, err := ComputeTotals(10_001, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), over.Shipping)
}

func TestComputeTotals_ShippingUsesPreDiscountSubtotal(t *testing.T) {
	//割引後に$100を割っても、送料判定は割引前の小計
	out, err := ComputeTotals(12_000, 5_000)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Shipping)
}

func TestComputeTotals_TaxRounding(t *testing.T) {
	//10% of $0.05 = 0.5セント → 四捨五入で1セント
	out, err := ComputeTotals(5, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Tax)

	//10% of $0.04 = 0.4セント → 0セント
	out, err = ComputeTotals(4, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Tax)
}

func TestComputeTotals_RejectsInvalidInput(t *testing.T) {
	_, err := ComputeTotals(-1, 0)
	assert.Error(t, err)

	_, err = ComputeTotals(100, -1)
	assert.Error(t, err)

	_, err = ComputeTotals(100, 101)
	assert.Error(t, err)
}

func TestCouponDiscount_PercentageWithCap(t *testing.T) {
	c := model.Coupon{
		Type:            model.CouponTypePercentage,
		Value:           20,
		MaximumDiscount: 1_500,
	}

	//20% of $10.00 = $2.00 → 上限$15.00は効かない
	assert.Equal(t, int64(200), couponDiscount(c, 1_000))

	//20% of $200.00 = $40.00 → 上限$15.00で頭打ち
	assert.Equal(t, int64(1_500), couponDiscount(c, 20_000))
}

func TestCouponDiscount_PercentageNoCap(t *testing.T) {
	c := model.Coupon{Type: model.CouponTypePercentage, Value: 50}
	assert.Equal(t, int64(10_000), couponDiscount(c, 20_000))
}

func TestCouponDiscount_FixedClampedToSubtotal(t *testing.T) {
	c := model.Coupon{Type: model.CouponTypeFixed, Value: 2_500}

	assert.Equal(t, int64(2_500), couponDiscount(c, 20_000))

	//小計より大きい固定額は小計まで
	assert.Equal(t, int64(1_000), couponDiscount(c, 1_000))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.05", formatCents(5))
	assert.Equal(t, "$12.34", formatCents(1_234))
	assert.Equal(t, "$100.00", formatCents(10_000))
}
