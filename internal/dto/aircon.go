package dto

// ── エアコンモジュール DTO ──

// CreateAirConRequest エアコン作成要求
type CreateAirConRequest struct {
	PropertyID   uint    `json:"property_id"   binding:"required"`
	ACType       string  `json:"ac_type"       binding:"omitempty,max=50"`
	Manufacturer string  `json:"manufacturer"  binding:"omitempty,max=50"`
	ModelNumber  string  `json:"model_number"  binding:"omitempty,max=50"`
	Quantity     int     `json:"quantity"      binding:"omitempty,min=1"`
	Location     string  `json:"location"      binding:"omitempty,max=100"`
	UnitPrice    float64 `json:"unit_price"    binding:"omitempty,min=0"`
	TotalAmount  float64 `json:"total_amount"  binding:"omitempty,min=0"`
	CleaningType string  `json:"cleaning_type" binding:"omitempty,max=50"`
	Note         string  `json:"note"`
}

// UpdateAirConRequest エアコン更新要求
type UpdateAirConRequest struct {
	ACType       *string  `json:"ac_type"       binding:"omitempty,max=50"`
	Manufacturer *string  `json:"manufacturer"  binding:"omitempty,max=50"`
	ModelNumber  *string  `json:"model_number"  binding:"omitempty,max=50"`
	Quantity     *int     `json:"quantity"      binding:"omitempty,min=1"`
	Location     *string  `json:"location"      binding:"omitempty,max=100"`
	UnitPrice    *float64 `json:"unit_price"    binding:"omitempty,min=0"`
	TotalAmount  *float64 `json:"total_amount"  binding:"omitempty,min=0"`
	CleaningType *string  `json:"cleaning_type" binding:"omitempty,max=50"`
	Note         *string  `json:"note"`
}
