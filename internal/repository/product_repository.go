package repository

import (
	"context"
	"errors"

	"robostore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（order_number / slug / sku / code）
var ErrConflict = errors.New("conflict")

// GET /products の検索条件
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Brand      string
	MinPrice   *int64
	MaxPrice   *int64
	Featured   bool
	Sort       string
}

// 検索サジェスト用の軽量ビュー
type ProductSuggestion struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductRepository interface {
	// 公開商品のみ、検索/絞り込み/ソート/ページング付き
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)

	FindByID(ctx context.Context, productID int64) (model.Product, error)

	// 公開商品をslugで取得
	FindBySlug(ctx context.Context, slug string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, productID int64) error

	// 名前/タグの前方一致サジェスト（公開商品のみ）
	Suggest(ctx context.Context, q string, limit int) ([]ProductSuggestion, error)

	// 公開商品数（ダッシュボード用）
	CountActive(ctx context.Context) (int64, error)
}
