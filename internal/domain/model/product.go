package model

import (
	"time"

	"gorm.io/gorm"
)

// 商品（ロボット機材）
// Priceは最小通貨単位（セント）で保持する。
type Product struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string `gorm:"type:varchar(255);not null" json:"name"`
	Slug             string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	SKU              string `gorm:"type:varchar(100);not null;uniqueIndex" json:"sku"`
	Description      string `gorm:"type:text;not null" json:"description"`
	ShortDescription string `gorm:"type:varchar(500)" json:"short_description"`

	//価格（セント）。在庫は0未満にならない（減算は条件付きUPDATEのみ）
	Price        int64  `gorm:"not null" json:"price"`
	ComparePrice *int64 `json:"compare_price,omitempty"`
	Stock        int64  `gorm:"not null;default:0" json:"stock"`

	CategoryID int64  `gorm:"not null;index" json:"category_id"`
	Brand      string `gorm:"type:varchar(100)" json:"brand"`

	//画像URLとタグはJSONカラムで保持
	Images []string `gorm:"serializer:json;type:text" json:"images"`
	Tags   []string `gorm:"serializer:json;type:text" json:"tags"`

	IsActive   bool `gorm:"not null;default:false" json:"is_active"`
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
