package repository

import (
	"context"

	"robostore/internal/domain/model"
)

type CategoryRepository interface {
	// 公開カテゴリ一覧
	ListActive(ctx context.Context) ([]model.Category, error)

	FindByID(ctx context.Context, categoryID int64) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	SoftDelete(ctx context.Context, categoryID int64) error

	// 名前の部分一致サジェスト（公開のみ）
	Suggest(ctx context.Context, q string, limit int) ([]model.Category, error)
}
