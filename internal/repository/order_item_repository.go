package repository

import (
	"context"

	"robostore/internal/domain/model"
)

type OrderItemRepository interface {
	// 明細を一括作成（OrderIDはここで振る）
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error

	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
