package model

import "time"

type CouponType string

const (
	//小計に対する割合（Valueはパーセント値 0〜100）
	CouponTypePercentage CouponType = "percentage"

	//固定額（Valueはセント）
	CouponTypeFixed CouponType = "fixed"
)

// クーポン。Codeは大文字に正規化して保存する。
// UsedCountはUsageLimitを超えない（加算は条件付きUPDATEのみ）。
type Coupon struct {
	ID    int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code  string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Type  CouponType `gorm:"type:varchar(20);not null" json:"type"`
	Value int64      `gorm:"not null" json:"value"`

	//小計がこの額（セント）未満なら適用不可。0なら下限なし
	MinimumAmount int64 `gorm:"not null;default:0" json:"minimum_amount"`

	//percentageのみ有効な割引上限（セント）。0なら上限なし
	MaximumDiscount int64 `gorm:"not null;default:0" json:"maximum_discount"`

	UsageLimit int64 `gorm:"not null" json:"usage_limit"`
	UsedCount  int64 `gorm:"not null;default:0" json:"used_count"`

	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null" json:"valid_until"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 有効期間内か（両端を含む）
func (c Coupon) InWindow(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}
