package dto

// ── スケジュールモジュール DTO ──

// CreateScheduleRequest スケジュール作成要求
type CreateScheduleRequest struct {
	Title               string `json:"title"          binding:"required,max=200"`
	Description         string `json:"description"`
	StartDatetime       string `json:"start_datetime" binding:"required"` // RFC3339
	EndDatetime         string `json:"end_datetime"   binding:"required"`
	AllDay              bool   `json:"all_day"`
	Priority            string `json:"priority" binding:"omitempty,oneof=low normal high"`
	CustomerID          *uint  `json:"customer_id"`
	PropertyID          *uint  `json:"property_id"`
	NotificationEnabled *bool  `json:"notification_enabled"`
	NotificationMinutes *int   `json:"notification_minutes" binding:"omitempty,min=0,max=1440"`
}

// UpdateScheduleRequest スケジュール更新要求
type UpdateScheduleRequest struct {
	Title               *string `json:"title"       binding:"omitempty,max=200"`
	Description         *string `json:"description"`
	StartDatetime       *string `json:"start_datetime"`
	EndDatetime         *string `json:"end_datetime"`
	AllDay              *bool   `json:"all_day"`
	Status              *string `json:"status"   binding:"omitempty,oneof=pending completed cancelled"`
	Priority            *string `json:"priority" binding:"omitempty,oneof=low normal high"`
	CustomerID          *uint   `json:"customer_id"`
	PropertyID          *uint   `json:"property_id"`
	NotificationEnabled *bool   `json:"notification_enabled"`
	NotificationMinutes *int    `json:"notification_minutes" binding:"omitempty,min=0,max=1440"`
}

// MoveScheduleRequest カレンダー上のドラッグ移動要求
type MoveScheduleRequest struct {
	ID            uint   `json:"id"             binding:"required"`
	StartDatetime string `json:"start_datetime" binding:"required"`
	EndDatetime   string `json:"end_datetime"   binding:"required"`
}

// ScheduleListRequest スケジュール一覧検索パラメータ
type ScheduleListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	From   string `form:"from"`
	To     string `form:"to"`
	PaginationRequest
}

// EventsRequest カレンダーフィード期間パラメータ
type EventsRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to"   binding:"required"`
}

// EventResponse カレンダー表示用イベント
type EventResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Start         string `json:"start"`
	End           string `json:"end"`
	AllDay        bool   `json:"all_day"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	CustomerName  string `json:"customer_name,omitempty"`
	PropertyName  string `json:"property_name,omitempty"`
	ReportID      *uint  `json:"report_id,omitempty"`
}
