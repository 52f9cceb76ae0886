package repository

import (
	"context"
	"time"

	"robostore/internal/domain/model"
)

// 管理者の注文一覧の絞り込み
type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

// 売上上位の商品（ダッシュボード用）
type ProductSales struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

type OrderRepository interface {
	// 作成。order_numberの一意制約違反はErrConflictを返す
	Create(ctx context.Context, order model.Order) (int64, error)

	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)

	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	UpdateTrackingNumber(ctx context.Context, orderID int64, trackingNumber string) error

	// ダッシュボード用の集計
	CountAll(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (int64, error) // cancelled除外
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}
