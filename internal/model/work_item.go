package model

// WorkItem 作業項目マスタ — work_items テーブル
type WorkItem struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text"          json:"description,omitempty"`
	WorkAmount  float64 `gorm:"type:numeric(10,2)" json:"work_amount,omitempty"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
}

func (WorkItem) TableName() string { return "work_items" }
