package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/pkg/response"
)

// MustGetUserID Gin コンテキストから user_id を取り出す。
// JWT ミドルウェアが注入していなければ 401 を書き込み false を返す。
// 呼び出し側は ok=false なら即 return すること
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未認証です")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "未認証です")
		return 0, false
	}
	return id, true
}

// MustGetRole Gin コンテキストから role を取り出す
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	return s, true
}

// parseIDParam パスパラメータを uint ID として解析する。
// 失敗時は 400 を書き込み false を返す
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		response.BadRequest(c, 10001, "ID の形式が不正です")
		return 0, false
	}
	return uint(n), true
}
