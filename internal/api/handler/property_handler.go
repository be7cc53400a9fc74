package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// PropertyHandler 物件モジュール HTTP ハンドラ
type PropertyHandler struct {
	propertySvc service.PropertyService
}

// NewPropertyHandler PropertyHandler を生成する
func NewPropertyHandler(propertySvc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc}
}

// Create 物件作成
// POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	property, err := h.propertySvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, 21001, "顧客が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, property)
}

// Get 物件取得（顧客・エアコン込み）
// GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.propertySvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, property)
}

// List 物件一覧
// GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var req dto.PropertyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	properties, total, err := h.propertySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, properties, total, req.GetPage(), req.GetPageSize())
}

// Update 物件更新
// PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	property, err := h.propertySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, property)
}

// Delete 物件削除
// DELETE /api/v1/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertySvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListAirConditioners 物件配下のエアコン一覧（報告書フォームのルックアップ）
// GET /api/v1/properties/:id/air-conditioners
func (h *PropertyHandler) ListAirConditioners(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	aircons, err := h.propertySvc.ListAirConditioners(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, aircons)
}
