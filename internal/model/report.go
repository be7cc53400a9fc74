package model

import "time"

// 報告書ステータス
const (
	ReportStatusDraft     = "draft"
	ReportStatusPending   = "pending"
	ReportStatusCompleted = "completed"
	ReportStatusCancelled = "cancelled"
	ReportStatusOnHold    = "on_hold"
)

// ValidReportStatus 定義済みの報告書ステータスか判定する
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusDraft, ReportStatusPending, ReportStatusCompleted,
		ReportStatusCancelled, ReportStatusOnHold:
		return true
	}
	return false
}

// Report 作業報告書 — reports テーブル
// WorkTime / WorkDetail / Photo を所有し、報告書削除時に一緒に削除される
type Report struct {
	BaseModel
	PropertyID  uint       `gorm:"not null;index"    json:"property_id"`
	Title       string     `gorm:"type:varchar(200);not null;default:'作業完了書'" json:"title"`
	Date        *time.Time `gorm:"type:date"         json:"date,omitempty"`
	WorkAddress string     `gorm:"type:varchar(255)" json:"work_address,omitempty"`
	Technician  string     `gorm:"type:varchar(100)" json:"technician,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Note        string     `gorm:"type:text"         json:"note,omitempty"`

	// 関連
	Property    *Property    `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	WorkTimes   []WorkTime   `gorm:"foreignKey:ReportID"   json:"work_times,omitempty"`
	WorkDetails []WorkDetail `gorm:"foreignKey:ReportID"   json:"work_details,omitempty"`
	Photos      []Photo      `gorm:"foreignKey:ReportID"   json:"photos,omitempty"`
}

func (Report) TableName() string { return "reports" }

// WorkTime 作業時間 — work_times テーブル
// 複数日にまたがる作業は報告書 1 件に対し複数行を持つ
type WorkTime struct {
	BaseModel
	ReportID   uint      `gorm:"not null;index"   json:"report_id"`
	PropertyID uint      `gorm:"not null"         json:"property_id"`
	WorkDate   time.Time `gorm:"type:date;not null" json:"work_date"`
	StartTime  string    `gorm:"type:varchar(5)"  json:"start_time,omitempty"` // "HH:MM"
	EndTime    string    `gorm:"type:varchar(5)"  json:"end_time,omitempty"`   // "HH:MM"
	Note       string    `gorm:"type:text"        json:"note,omitempty"`
}

func (WorkTime) TableName() string { return "work_times" }

// WorkDetail 作業明細 — work_details テーブル
// 作業項目はマスタ参照（WorkItemID）と自由記述（WorkItemText）のどちらでも持てる
type WorkDetail struct {
	BaseModel
	ReportID         uint    `gorm:"not null;index"    json:"report_id"`
	PropertyID       uint    `gorm:"not null"          json:"property_id"`
	AirConditionerID *uint   `gorm:"index"             json:"air_conditioner_id,omitempty"`
	WorkItemID       *uint   `json:"work_item_id,omitempty"`
	WorkItemText     string  `gorm:"type:varchar(100)" json:"work_item_text,omitempty"`
	Description      string  `gorm:"type:text"         json:"description,omitempty"`
	Confirmation     string  `gorm:"type:varchar(255)" json:"confirmation,omitempty"`
	WorkAmount       float64 `gorm:"type:numeric(10,2)" json:"work_amount,omitempty"`

	// 関連
	AirConditioner *AirConditioner `gorm:"foreignKey:AirConditionerID" json:"air_conditioner,omitempty"`
	WorkItem       *WorkItem       `gorm:"foreignKey:WorkItemID"       json:"work_item,omitempty"`
}

func (WorkDetail) TableName() string { return "work_details" }

// WorkItemName マスタ参照があればその名称、なければ自由記述を返す
func (d *WorkDetail) WorkItemName() string {
	if d.WorkItem != nil && d.WorkItem.Name != "" {
		return d.WorkItem.Name
	}
	return d.WorkItemText
}
