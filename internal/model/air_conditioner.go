package model

import "strings"

// AirConditioner エアコン — air_conditioners テーブル
type AirConditioner struct {
	BaseModel
	PropertyID   uint    `gorm:"not null;index"   json:"property_id"`
	ACType       string  `gorm:"type:varchar(50)" json:"ac_type,omitempty"` // 壁掛け / 天井埋込 など
	Manufacturer string  `gorm:"type:varchar(50)" json:"manufacturer,omitempty"`
	ModelNumber  string  `gorm:"type:varchar(50)" json:"model_number,omitempty"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	Location     string  `gorm:"type:varchar(100)" json:"location,omitempty"` // 設置場所（リビング等）
	UnitPrice    float64 `gorm:"type:numeric(10,2)" json:"unit_price,omitempty"`
	TotalAmount  float64 `gorm:"type:numeric(10,2)" json:"total_amount,omitempty"`
	CleaningType string  `gorm:"type:varchar(50)"  json:"cleaning_type,omitempty"`
	Note         string  `gorm:"type:text"         json:"note,omitempty"`

	// 関連
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (AirConditioner) TableName() string { return "air_conditioners" }

// Summary メーカー・型番・設置場所をまとめた表示用ラベル
func (a *AirConditioner) Summary() string {
	parts := make([]string, 0, 3)
	if a.Manufacturer != "" {
		parts = append(parts, a.Manufacturer)
	}
	if a.ModelNumber != "" {
		parts = append(parts, a.ModelNumber)
	}
	if a.Location != "" {
		parts = append(parts, a.Location)
	}
	if len(parts) == 0 {
		return "エアコン"
	}
	return strings.Join(parts, " ")
}
