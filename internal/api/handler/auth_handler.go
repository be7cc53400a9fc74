package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/redis"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// AuthHandler 認証モジュール HTTP ハンドラ
type AuthHandler struct {
	authSvc service.AuthService
	rdb     *redis.Client
}

// NewAuthHandler AuthHandler を生成する
func NewAuthHandler(authSvc service.AuthService, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, rdb: rdb}
}

// Login ログイン
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "ユーザー名またはパスワードが違います")
		case errors.Is(err, service.ErrUserInactive):
			response.Error(c, http.StatusForbidden, 11002, "このアカウントは無効化されています")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout ログアウト
// POST /api/v1/auth/logout
//
// 使用中のアクセストークンをブラックリストへ登録する。
// Redis 未接続時はトークンの自然失効に任せる
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb != nil {
		jti := c.GetString("token_jti")
		if exp, ok := c.Get("token_exp"); ok && jti != "" {
			if expTime, ok := exp.(time.Time); ok {
				_ = h.rdb.BlacklistToken(c.Request.Context(), jti, time.Until(expTime))
			}
		}
	}
	response.OK(c, nil)
}

// RefreshToken トークン更新
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, 11003, "リフレッシュトークンが無効です")
		return
	}

	response.OK(c, result)
}

// ChangePassword パスワード変更
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, 11004, "現在のパスワードが違います")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "ユーザーが見つかりません")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
