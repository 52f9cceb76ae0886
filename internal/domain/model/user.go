package model

import "time"

// GitHub OAuthで認証するユーザー。パスワードは持たない。
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	GithubID    string `gorm:"type:varchar(50);not null;uniqueIndex" json:"-"`
	Username    string `gorm:"type:varchar(255);not null" json:"username"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Avatar      string `gorm:"type:varchar(500)" json:"avatar"`
	IsAdmin     bool   `gorm:"not null;default:false" json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
