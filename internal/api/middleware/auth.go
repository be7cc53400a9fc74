package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/pkg/jwt"
	"github.com/takanoridomae/Cleaning/pkg/redis"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// JWTAuth JWT 認証ミドルウェア。
// Authorization: Bearer <token> から Access Token を検証する。
// rdb が nil でなければログアウト済みトークンのブラックリストも確認する
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "認証ヘッダがありません")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "認証ヘッダの形式が不正です")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "トークンが無効または期限切れです")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "トークン種別が不正です")
			c.Abort()
			return
		}

		// ログアウト済みトークンの拒否（Redis 未接続時は確認を省略する）
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "トークンは失効しています")
				c.Abort()
				return
			}
		}

		// ユーザー情報をコンテキストへ注入
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RoleAuth 役割権限ミドルウェア。
// 現在のユーザーが指定された役割のいずれかを持つか確認する
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未認証です")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "アクセス権限がありません")
		c.Abort()
	}
}

// RequireEdit 編集権限（admin / all_access / editor）を要求する
func RequireEdit() gin.HandlerFunc {
	return RoleAuth(model.RoleAdmin, model.RoleAllAccess, model.RoleEditor)
}

// RequireDelete 削除権限（admin / all_access）を要求する
func RequireDelete() gin.HandlerFunc {
	return RoleAuth(model.RoleAdmin, model.RoleAllAccess)
}

// RequireAdmin 管理者権限を要求する
func RequireAdmin() gin.HandlerFunc {
	return RoleAuth(model.RoleAdmin)
}
