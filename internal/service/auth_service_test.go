package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/pkg/jwt"
)

// ── テスト補助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func setupTestAuthService(t *testing.T) (AuthService, *testRepos, *jwt.Manager) {
	t.Helper()
	repo, mocks := newTestRepository()
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, zap.NewNop())
	return svc, mocks, jwtMgr
}

// seedUser パスワード "password123" のユーザーを投入する
func seedUser(t *testing.T, mocks *testRepos, username, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("ハッシュ生成に失敗: %v", err)
	}
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Name:         "テストユーザー",
		Role:         role,
		IsActive:     active,
	}
	mocks.users.Create(context.Background(), user)
	return user
}

// ════════════════════════════════════════════════════════════
// Login
// ════════════════════════════════════════════════════════════

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService(t)
	user := seedUser(t, mocks, "tanaka", model.RoleAdmin, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	})
	if err != nil {
		t.Fatalf("ログインに失敗: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("トークンペアが返るはず")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn 不一致: %d", resp.ExpiresIn)
	}
	if resp.User.Username != "tanaka" || resp.User.Role != model.RoleAdmin {
		t.Errorf("ユーザー情報不一致: %+v", resp.User)
	}

	// 発行されたアクセストークンは自分で検証できる
	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("トークンの検証に失敗: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != user.ID {
		t.Errorf("クレーム不一致: %+v", claims)
	}

	// 最終ログイン時刻が記録される
	if mocks.users.users[user.ID].LastLoginAt == nil {
		t.Error("LastLoginAt が記録されるはず")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials を期待: %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody", Password: "password123",
	})
	// 存在しないユーザーもパスワード誤りと同じエラーにする（列挙攻撃対策）
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials を期待: %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedUser(t, mocks, "tanaka", model.RoleEditor, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("ErrUserInactive を期待: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Refresh
// ════════════════════════════════════════════════════════════

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	})
	if err != nil {
		t.Fatalf("前提のログインに失敗: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("更新に失敗: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("新しいアクセストークンが返るはず")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	})
	if err != nil {
		t.Fatalf("前提のログインに失敗: %v", err)
	}

	// アクセストークンでは更新できない
	if _, err := svc.Refresh(context.Background(), login.AccessToken); err == nil {
		t.Error("アクセストークンでの更新は拒否されるはず")
	}
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	if _, err := svc.Refresh(context.Background(), "not.a.token"); err == nil {
		t.Error("不正トークンは拒否されるはず")
	}
}

func TestAuthService_Refresh_InactiveUser(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	user := seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	})
	if err != nil {
		t.Fatalf("前提のログインに失敗: %v", err)
	}

	// 更新までの間に無効化されたユーザー
	mocks.users.users[user.ID].IsActive = false
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrUserInactive) {
		t.Errorf("ErrUserInactive を期待: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// ChangePassword
// ════════════════════════════════════════════════════════════

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	user := seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	err := svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "new-password-456",
	})
	if err != nil {
		t.Fatalf("変更に失敗: %v", err)
	}

	// 新パスワードでログインできる
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "new-password-456",
	}); err != nil {
		t.Errorf("新パスワードでログインできるはず: %v", err)
	}
	// 旧パスワードは弾かれる
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "tanaka", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧パスワードは無効のはず: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	user := seedUser(t, mocks, "tanaka", model.RoleEditor, true)

	err := svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "new-password-456",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("ErrWrongPassword を期待: %v", err)
	}
}

func TestAuthService_ChangePassword_UserNotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	err := svc.ChangePassword(context.Background(), 999, &dto.ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "new-password-456",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ErrUserNotFound を期待: %v", err)
	}
}
