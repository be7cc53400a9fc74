package model

// Property 物件 — properties テーブル
type Property struct {
	BaseModel
	CustomerID      uint   `gorm:"not null;index"    json:"customer_id"`
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	PostalCode      string `gorm:"type:varchar(10)"  json:"postal_code,omitempty"`
	Address         string `gorm:"type:varchar(255)" json:"address,omitempty"`
	ReceptionType   string `gorm:"type:varchar(50)"  json:"reception_type,omitempty"`   // 鍵の受け渡し方法など
	ReceptionDetail string `gorm:"type:varchar(255)" json:"reception_detail,omitempty"`
	Note            string `gorm:"type:text"         json:"note,omitempty"`

	// 関連
	Customer        *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	AirConditioners []AirConditioner `gorm:"foreignKey:PropertyID" json:"air_conditioners,omitempty"`
}

func (Property) TableName() string { return "properties" }
