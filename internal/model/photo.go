package model

// 写真種別
const (
	PhotoTypeBefore = "before"
	PhotoTypeAfter  = "after"
)

// Photo 施工前後写真 — photos テーブル
// Filepath は写真種別（before|after）から始まるアップロードルート相対パス
type Photo struct {
	BaseModel
	ReportID         uint   `gorm:"not null;index"    json:"report_id"`
	AirConditionerID *uint  `json:"air_conditioner_id,omitempty"`
	WorkItemID       *uint  `json:"work_item_id,omitempty"`
	PhotoType        string `gorm:"type:varchar(20);not null;default:'before'" json:"photo_type"`
	Filename         string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalFilename string `gorm:"type:varchar(255)" json:"original_filename,omitempty"`
	Filepath         string `gorm:"type:varchar(500);not null" json:"filepath"`
	Caption          string `gorm:"type:varchar(255)" json:"caption,omitempty"`
	RoomName         string `gorm:"type:varchar(100)" json:"room_name,omitempty"`

	// 関連
	AirConditioner *AirConditioner `gorm:"foreignKey:AirConditionerID" json:"air_conditioner,omitempty"`
	WorkItem       *WorkItem       `gorm:"foreignKey:WorkItemID"       json:"work_item,omitempty"`
}

func (Photo) TableName() string { return "photos" }

// Label 部屋名とキャプションを結合した表示用ラベル
func (p *Photo) Label() string {
	switch {
	case p.RoomName != "" && p.Caption != "":
		return p.RoomName + " " + p.Caption
	case p.RoomName != "":
		return p.RoomName
	default:
		return p.Caption
	}
}
