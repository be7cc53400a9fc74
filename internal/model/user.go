package model

import "time"

// ユーザー権限ロール
const (
	RoleAdmin     = "admin"      // 全操作＋ユーザー管理
	RoleAllAccess = "all_access" // 全データの作成・編集・削除
	RoleEditor    = "editor"     // 作成・編集（削除不可）
	RoleViewer    = "viewer"     // 閲覧のみ
)

// ValidRole 定義済みロールか判定する
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleAllAccess, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User ユーザー — users テーブル
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(80);not null;uniqueIndex"  json:"username"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"             json:"-"`
	Name         string     `gorm:"type:varchar(100)"                      json:"name,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true"                  json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string { return "users" }

// CanEdit 作成・編集が可能なロールか
func (u *User) CanEdit() bool {
	switch u.Role {
	case RoleAdmin, RoleAllAccess, RoleEditor:
		return true
	}
	return false
}

// CanDelete 削除が可能なロールか
func (u *User) CanDelete() bool {
	switch u.Role {
	case RoleAdmin, RoleAllAccess:
		return true
	}
	return false
}

// IsAdmin 管理者か
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
