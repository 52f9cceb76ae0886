package usecase

import (
	"errors"
	"fmt"
)

// クーポンが適用できない理由
type CouponRejectReason string

const (
	CouponRejectNotFound     CouponRejectReason = "not_found"
	CouponRejectExpired      CouponRejectReason = "expired"
	CouponRejectExhausted    CouponRejectReason = "exhausted"
	CouponRejectBelowMinimum CouponRejectReason = "below_minimum"
)

// クーポン適用の拒否。単体の検証APIではそのまま返し、
// 注文作成時は割引なしで続行する（注文は失敗させない）。
type CouponRejection struct {
	Code   string
	Reason CouponRejectReason

	//below_minimumのときだけ入る（セント）
	Minimum   int64
	Shortfall int64
}

func (e *CouponRejection) Error() string {
	switch e.Reason {
	case CouponRejectNotFound:
		return "invalid or inactive coupon"
	case CouponRejectExpired:
		return "coupon expired"
	case CouponRejectExhausted:
		return "coupon usage limit exceeded"
	case CouponRejectBelowMinimum:
		return fmt.Sprintf("minimum order amount of %s required", formatCents(e.Minimum))
	}
	return "coupon not applicable"
}

func AsCouponRejection(err error) (*CouponRejection, bool) {
	var cr *CouponRejection
	ok := errors.As(err, &cr)
	return cr, ok
}

// 在庫確保の拒否理由
type StockRejectReason string

const (
	StockRejectProductNotFound   StockRejectReason = "product_not_found"
	StockRejectInsufficientStock StockRejectReason = "insufficient_stock"
)

// 在庫確保の拒否。注文全体を中断する（トランザクションごと戻る）。
type StockRejection struct {
	ProductID   int64
	ProductName string
	Reason      StockRejectReason

	//insufficient_stockのときの現在庫
	Available int64
}

func (e *StockRejection) Error() string {
	if e.Reason == StockRejectProductNotFound {
		return fmt.Sprintf("product %d not found", e.ProductID)
	}
	return fmt.Sprintf("insufficient stock for %s (only %d left)", e.ProductName, e.Available)
}

func AsStockRejection(err error) (*StockRejection, bool) {
	var sr *StockRejection
	ok := errors.As(err, &sr)
	return sr, ok
}
