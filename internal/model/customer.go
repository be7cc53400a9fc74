package model

// Customer 顧客 — customers テーブル
type Customer struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;index" json:"name"`
	CompanyName string `gorm:"type:varchar(100)"                json:"company_name,omitempty"`
	Email       string `gorm:"type:varchar(120)"                json:"email,omitempty"`
	Phone       string `gorm:"type:varchar(20)"                 json:"phone,omitempty"`
	PostalCode  string `gorm:"type:varchar(10)"                 json:"postal_code,omitempty"`
	Address     string `gorm:"type:varchar(255)"                json:"address,omitempty"`
	Note        string `gorm:"type:text"                        json:"note,omitempty"`

	// 関連
	Properties []Property `gorm:"foreignKey:CustomerID" json:"properties,omitempty"`
}

func (Customer) TableName() string { return "customers" }

// DisplayName 会社名があれば「氏名（会社名）」形式で返す
func (c *Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.Name + "（" + c.CompanyName + "）"
	}
	return c.Name
}
