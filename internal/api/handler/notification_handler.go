package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// NotificationHandler 通知モジュール HTTP ハンドラ
type NotificationHandler struct {
	notificationSvc service.NotificationService
	dispatcher      *service.Dispatcher
}

// NewNotificationHandler NotificationHandler を生成する。
// dispatcher は通知無効構成では nil になる
func NewNotificationHandler(notificationSvc service.NotificationService, dispatcher *service.Dispatcher) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, dispatcher: dispatcher}
}

// Status 通知ディスパッチャの稼働状況
// GET /api/v1/notifications/status
func (h *NotificationHandler) Status(c *gin.Context) {
	status := gin.H{
		"enabled":         h.dispatcher != nil,
		"mail_configured": h.notificationSvc.MailConfigured(),
	}

	if h.dispatcher != nil {
		running, lastRun, lastStats := h.dispatcher.Status()
		status["running"] = running
		if !lastRun.IsZero() {
			status["last_run"] = lastRun.Format(time.RFC3339)
			status["last_stats"] = lastStats
		}
	}

	response.OK(c, status)
}

// Trigger 通知チェックを即時実行する（デバッグ・手動運用向け）
// POST /api/v1/notifications/trigger
func (h *NotificationHandler) Trigger(c *gin.Context) {
	result := h.notificationSvc.CheckAndSend(c.Request.Context(), time.Now())
	response.OK(c, result)
}
