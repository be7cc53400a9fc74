package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// WorkItemHandler 作業項目マスタ HTTP ハンドラ
type WorkItemHandler struct {
	workItemSvc service.WorkItemService
}

// NewWorkItemHandler WorkItemHandler を生成する
func NewWorkItemHandler(workItemSvc service.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{workItemSvc: workItemSvc}
}

// Create 作業項目作成
// POST /api/v1/work-items
func (h *WorkItemHandler) Create(c *gin.Context) {
	var req dto.CreateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	item, err := h.workItemSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrWorkItemAlreadyExists) {
			response.Conflict(c, 24002, "同名の作業項目が既に存在します")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, item)
}

// Get 作業項目取得
// GET /api/v1/work-items/:id
func (h *WorkItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.workItemSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkItemNotFound) {
			response.NotFound(c, 24001, "作業項目が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, item)
}

// List 作業項目一覧
// GET /api/v1/work-items?active_only=true
func (h *WorkItemHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	items, err := h.workItemSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// Update 作業項目更新
// PUT /api/v1/work-items/:id
func (h *WorkItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	item, err := h.workItemSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkItemNotFound):
			response.NotFound(c, 24001, "作業項目が見つかりません")
		case errors.Is(err, service.ErrWorkItemAlreadyExists):
			response.Conflict(c, 24002, "同名の作業項目が既に存在します")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, item)
}

// Delete 作業項目削除
// DELETE /api/v1/work-items/:id
func (h *WorkItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workItemSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrWorkItemNotFound) {
			response.NotFound(c, 24001, "作業項目が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
