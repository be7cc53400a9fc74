package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/api/handler"
	"github.com/takanoridomae/Cleaning/internal/api/middleware"
	"github.com/takanoridomae/Cleaning/pkg/jwt"
	"github.com/takanoridomae/Cleaning/pkg/redis"
)

// Setup Gin ルーティングエンジンを初期化して返す
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── グローバルミドルウェア ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(int64(cfg.Upload.MaxSizeMB) << 20))

	// ── ヘルスチェック ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 認証モジュール（認証不要。ログインはレート制限付き）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 認証必須ルート
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// ユーザーモジュール
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RequireAdmin(), h.User.List)
				users.POST("", middleware.RequireAdmin(), h.User.Create)
				users.GET("/:id", middleware.RequireAdmin(), h.User.Get)
				users.PUT("/:id", middleware.RequireAdmin(), h.User.Update)
				users.DELETE("/:id", middleware.RequireAdmin(), h.User.Delete)
			}

			// 顧客モジュール
			customers := authorized.Group("/customers")
			{
				customers.GET("", h.Customer.List)
				customers.GET("/:id", h.Customer.Get)
				customers.GET("/:id/properties", h.Customer.ListProperties)
				customers.POST("", middleware.RequireEdit(), h.Customer.Create)
				customers.PUT("/:id", middleware.RequireEdit(), h.Customer.Update)
				customers.DELETE("/:id", middleware.RequireDelete(), h.Customer.Delete)
			}

			// 物件モジュール
			properties := authorized.Group("/properties")
			{
				properties.GET("", h.Property.List)
				properties.GET("/:id", h.Property.Get)
				properties.GET("/:id/air-conditioners", h.Property.ListAirConditioners)
				properties.POST("", middleware.RequireEdit(), h.Property.Create)
				properties.PUT("/:id", middleware.RequireEdit(), h.Property.Update)
				properties.DELETE("/:id", middleware.RequireDelete(), h.Property.Delete)
			}

			// エアコンモジュール
			aircons := authorized.Group("/air-conditioners")
			{
				aircons.GET("/:id", h.AirCon.Get)
				aircons.POST("", middleware.RequireEdit(), h.AirCon.Create)
				aircons.PUT("/:id", middleware.RequireEdit(), h.AirCon.Update)
				aircons.DELETE("/:id", middleware.RequireDelete(), h.AirCon.Delete)
			}

			// 作業項目マスタ
			workItems := authorized.Group("/work-items")
			{
				workItems.GET("", h.WorkItem.List)
				workItems.GET("/:id", h.WorkItem.Get)
				workItems.POST("", middleware.RequireEdit(), h.WorkItem.Create)
				workItems.PUT("/:id", middleware.RequireEdit(), h.WorkItem.Update)
				workItems.DELETE("/:id", middleware.RequireDelete(), h.WorkItem.Delete)
			}

			// 報告書モジュール
			reports := authorized.Group("/reports")
			{
				reports.GET("", h.Report.List)
				reports.GET("/descriptions", h.Report.ListDescriptions)
				reports.GET("/:id", h.Report.Get)
				reports.GET("/:id/pdf", h.Report.DownloadPDF)
				reports.GET("/:id/photos", h.Photo.ListByReport)
				reports.POST("", middleware.RequireEdit(), h.Report.Create)
				reports.PUT("/:id", middleware.RequireEdit(), h.Report.Update)
				reports.DELETE("/:id", middleware.RequireDelete(), h.Report.Delete)
				reports.POST("/:id/photos", middleware.RequireEdit(), h.Photo.Upload)
			}

			// 写真モジュール
			photos := authorized.Group("/photos")
			{
				photos.GET("/:id/file", h.Photo.Serve)
				photos.PUT("/:id", middleware.RequireEdit(), h.Photo.Update)
				photos.DELETE("/:id", middleware.RequireDelete(), h.Photo.Delete)
			}

			// スケジュールモジュール
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.GET("/events", h.Schedule.Events)
				schedules.GET("/export.ics", h.Schedule.ExportICS)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.POST("", middleware.RequireEdit(), h.Schedule.Create)
				schedules.POST("/move", middleware.RequireEdit(), h.Schedule.Move)
				schedules.POST("/:id/complete", middleware.RequireEdit(), h.Schedule.Complete)
				schedules.PUT("/:id", middleware.RequireEdit(), h.Schedule.Update)
				schedules.DELETE("/:id", middleware.RequireDelete(), h.Schedule.Delete)
			}

			// エクスポートモジュール
			export := authorized.Group("/export")
			{
				export.GET("/order-details.xlsx", h.Export.OrderDetails)
			}

			// 通知モジュール
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("/status", h.Notification.Status)
				notifications.POST("/trigger", middleware.RequireEdit(), h.Notification.Trigger)
			}

			// 管理者モジュール
			admin := authorized.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/backup", h.Backup.Backup)
				admin.POST("/restore", h.Backup.Restore)
			}
		}
	}

	return r
}
