package model

import "time"

// スケジュールステータス
const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

// ValidScheduleStatus 定義済みのスケジュールステータスか判定する
func ValidScheduleStatus(s string) bool {
	switch s {
	case ScheduleStatusPending, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}

// 優先度
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Schedule カレンダー予定 — schedules テーブル
//
// ReportID は nullable。報告書に連動して生成された予定は報告書削除時に
// キャンセル扱いで切り離され（削除はされない）、履歴として残る
type Schedule struct {
	BaseModel
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	Description   string    `gorm:"type:text"                  json:"description,omitempty"`
	StartDatetime time.Time `gorm:"not null;index"             json:"start_datetime"`
	EndDatetime   time.Time `gorm:"not null"                   json:"end_datetime"`
	AllDay        bool      `gorm:"not null;default:false"     json:"all_day"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority      string    `gorm:"type:varchar(20);not null;default:'normal'"        json:"priority"`

	CustomerID *uint `gorm:"index" json:"customer_id,omitempty"`
	PropertyID *uint `gorm:"index" json:"property_id,omitempty"`
	ReportID   *uint `gorm:"index" json:"report_id,omitempty"`

	// Google カレンダー連携用プレースホルダ（未使用）
	GoogleCalendarID      string `gorm:"type:varchar(255)" json:"google_calendar_id,omitempty"`
	GoogleCalendarEventID string `gorm:"type:varchar(255)" json:"google_calendar_event_id,omitempty"`

	// 繰り返し予定プレースホルダ（未使用）
	RecurrenceRule string `gorm:"type:varchar(255)" json:"recurrence_rule,omitempty"`

	NotificationEnabled bool `gorm:"not null;default:true" json:"notification_enabled"`
	NotificationMinutes int  `gorm:"not null;default:30"   json:"notification_minutes"`

	CreatedBy *uint `json:"created_by,omitempty"`

	// 関連
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Report   *Report   `gorm:"foreignKey:ReportID"   json:"report,omitempty"`
	Creator  *User     `gorm:"foreignKey:CreatedBy"  json:"creator,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }
