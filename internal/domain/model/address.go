package model

// 注文に埋め込む住所スナップショット（独立テーブルにはしない）
type Address struct {
	Name    string `gorm:"type:varchar(255)" json:"name"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(255)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}
