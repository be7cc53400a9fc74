package dto

// ── 物件モジュール DTO ──

// CreatePropertyRequest 物件作成要求
type CreatePropertyRequest struct {
	CustomerID      uint   `json:"customer_id"      binding:"required"`
	Name            string `json:"name"             binding:"required,max=100"`
	PostalCode      string `json:"postal_code"      binding:"omitempty,max=10"`
	Address         string `json:"address"          binding:"omitempty,max=255"`
	ReceptionType   string `json:"reception_type"   binding:"omitempty,max=50"`
	ReceptionDetail string `json:"reception_detail" binding:"omitempty,max=255"`
	Note            string `json:"note"`
}

// UpdatePropertyRequest 物件更新要求
type UpdatePropertyRequest struct {
	Name            *string `json:"name"             binding:"omitempty,max=100"`
	PostalCode      *string `json:"postal_code"      binding:"omitempty,max=10"`
	Address         *string `json:"address"          binding:"omitempty,max=255"`
	ReceptionType   *string `json:"reception_type"   binding:"omitempty,max=50"`
	ReceptionDetail *string `json:"reception_detail" binding:"omitempty,max=255"`
	Note            *string `json:"note"`
}

// PropertyListRequest 物件一覧検索パラメータ
type PropertyListRequest struct {
	Query string `form:"q"`
	PaginationRequest
}
