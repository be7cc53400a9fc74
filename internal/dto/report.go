package dto

// ── 報告書モジュール DTO ──

// WorkTimeEntry 作業時間入力行。日付・時刻は文字列で受け取り、
// 解析の失敗はスケジュール同期の警告として扱う
type WorkTimeEntry struct {
	WorkDate  string `json:"work_date" binding:"required"` // "2006-01-02"
	StartTime string `json:"start_time"`                   // "15:04"
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}

// WorkDetailEntry 作業明細入力行
type WorkDetailEntry struct {
	AirConditionerID *uint   `json:"air_conditioner_id"`
	WorkItemID       *uint   `json:"work_item_id"`
	WorkItemText     string  `json:"work_item_text" binding:"omitempty,max=100"`
	Description      string  `json:"description"`
	Confirmation     string  `json:"confirmation"   binding:"omitempty,max=255"`
	WorkAmount       float64 `json:"work_amount"    binding:"omitempty,min=0"`
}

// CreateReportRequest 報告書作成要求
type CreateReportRequest struct {
	PropertyID  uint              `json:"property_id" binding:"required"`
	Title       string            `json:"title"       binding:"omitempty,max=200"`
	Date        string            `json:"date"        binding:"omitempty"` // "2006-01-02"
	WorkAddress string            `json:"work_address" binding:"omitempty,max=255"`
	Technician  string            `json:"technician"  binding:"omitempty,max=100"`
	Status      string            `json:"status"      binding:"omitempty,oneof=draft pending completed cancelled on_hold"`
	Note        string            `json:"note"`
	WorkTimes   []WorkTimeEntry   `json:"work_times"`
	WorkDetails []WorkDetailEntry `json:"work_details"`
}

// UpdateReportRequest 報告書更新要求。
// WorkTimes / WorkDetails は nil なら変更なし、非 nil なら全置き換え
type UpdateReportRequest struct {
	Title       *string           `json:"title"        binding:"omitempty,max=200"`
	Date        *string           `json:"date"`
	WorkAddress *string           `json:"work_address" binding:"omitempty,max=255"`
	Technician  *string           `json:"technician"   binding:"omitempty,max=100"`
	Status      *string           `json:"status"       binding:"omitempty,oneof=draft pending completed cancelled on_hold"`
	Note        *string           `json:"note"`
	WorkTimes   []WorkTimeEntry   `json:"work_times"`
	WorkDetails []WorkDetailEntry `json:"work_details"`
}

// ReportListRequest 報告書一覧検索パラメータ
type ReportListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=draft pending completed cancelled on_hold"`
	Query  string `form:"q"`
	PaginationRequest
}
