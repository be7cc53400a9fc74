package dto

// ── ユーザーモジュール DTO ──

// CreateUserRequest ユーザー作成要求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
	Role     string `json:"role"     binding:"required,oneof=admin all_access editor viewer"`
}

// UpdateUserRequest ユーザー更新要求
type UpdateUserRequest struct {
	Email    *string `json:"email"     binding:"omitempty,email"`
	Name     *string `json:"name"      binding:"omitempty,max=100"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin all_access editor viewer"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"  binding:"omitempty,min=8,max=72"`
}

// UserResponse ユーザー情報応答（パスワードハッシュは含めない）
type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}
