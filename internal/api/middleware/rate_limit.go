package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/pkg/redis"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// RateLimit Redis ベースのレート制限ミドルウェア。
// limit: ウィンドウ内に許容する最大リクエスト数
// window: ウィンドウ時間
// rdb が nil の場合は制限せず通す（JWTAuth と同じ縮退方針）
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis 障害時は縮退して通す
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "リクエストが多すぎます。しばらくしてから再試行してください")
			c.Abort()
			return
		}

		c.Next()
	}
}
