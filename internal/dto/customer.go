package dto

// ── 顧客モジュール DTO ──

// CreateCustomerRequest 顧客作成要求
type CreateCustomerRequest struct {
	Name        string `json:"name"         binding:"required,max=100"`
	CompanyName string `json:"company_name" binding:"omitempty,max=100"`
	Email       string `json:"email"        binding:"omitempty,email"`
	Phone       string `json:"phone"        binding:"omitempty,max=20"`
	PostalCode  string `json:"postal_code"  binding:"omitempty,max=10"`
	Address     string `json:"address"      binding:"omitempty,max=255"`
	Note        string `json:"note"`
}

// UpdateCustomerRequest 顧客更新要求
type UpdateCustomerRequest struct {
	Name        *string `json:"name"         binding:"omitempty,max=100"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=100"`
	Email       *string `json:"email"        binding:"omitempty,email"`
	Phone       *string `json:"phone"        binding:"omitempty,max=20"`
	PostalCode  *string `json:"postal_code"  binding:"omitempty,max=10"`
	Address     *string `json:"address"      binding:"omitempty,max=255"`
	Note        *string `json:"note"`
}

// CustomerListRequest 顧客一覧検索パラメータ
type CustomerListRequest struct {
	Query string `form:"q"`
	PaginationRequest
}
