package model

import "time"

// BaseModel 全業務モデルが埋め込む共通フィールド
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
