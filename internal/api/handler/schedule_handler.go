package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// ScheduleHandler スケジュールモジュール HTTP ハンドラ
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler ScheduleHandler を生成する
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create スケジュール作成（手動）
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	var createdBy *uint
	if userID, ok := MustGetUserID(c); ok {
		createdBy = &userID
	} else {
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, schedule)
}

// Get スケジュール取得
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// List スケジュール一覧
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	schedules, total, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, schedules, total, req.GetPage(), req.GetPageSize())
}

// Update スケジュール更新
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// Move カレンダー上のドラッグ移動
// POST /api/v1/schedules/move
func (h *ScheduleHandler) Move(c *gin.Context) {
	var req dto.MoveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	schedule, err := h.scheduleSvc.Move(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// Complete スケジュール完了
// POST /api/v1/schedules/:id/complete
func (h *ScheduleHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// Delete スケジュール削除
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Events カレンダー表示用イベントフィード
// GET /api/v1/schedules/events?from=...&to=...
func (h *ScheduleHandler) Events(c *gin.Context) {
	var req dto.EventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from / to は必須です")
		return
	}

	events, err := h.scheduleSvc.Events(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, events)
}

// ExportICS iCalendar 形式のエクスポート
// GET /api/v1/schedules/export.ics?from=...&to=...
//
// 期間未指定時は今日から 1 年分を出力する
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	from := time.Now().AddDate(0, 0, -30)
	to := time.Now().AddDate(1, 0, 0)
	if raw := c.Query("from"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			from = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			to = t
		}
	}

	data, err := h.scheduleSvc.ExportICS(c.Request.Context(), from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := url.QueryEscape("作業スケジュール.ics")
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 27001, "スケジュールが見つかりません")
	case errors.Is(err, service.ErrInvalidDatetime):
		response.BadRequest(c, 27002, "日時の形式が不正です")
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 27003, "終了日時は開始日時より後にしてください")
	default:
		response.InternalError(c)
	}
}
