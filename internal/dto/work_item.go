package dto

// ── 作業項目マスタ DTO ──

// CreateWorkItemRequest 作業項目作成要求
type CreateWorkItemRequest struct {
	Name        string  `json:"name"        binding:"required,max=100"`
	Description string  `json:"description"`
	WorkAmount  float64 `json:"work_amount" binding:"omitempty,min=0"`
	SortOrder   int     `json:"sort_order"`
}

// UpdateWorkItemRequest 作業項目更新要求
type UpdateWorkItemRequest struct {
	Name        *string  `json:"name"        binding:"omitempty,max=100"`
	Description *string  `json:"description"`
	WorkAmount  *float64 `json:"work_amount" binding:"omitempty,min=0"`
	SortOrder   *int     `json:"sort_order"`
	IsActive    *bool    `json:"is_active"`
}
