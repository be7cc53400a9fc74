package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// AirConHandler エアコンモジュール HTTP ハンドラ
type AirConHandler struct {
	airconSvc service.AirConService
}

// NewAirConHandler AirConHandler を生成する
func NewAirConHandler(airconSvc service.AirConService) *AirConHandler {
	return &AirConHandler{airconSvc: airconSvc}
}

// Create エアコン作成
// POST /api/v1/air-conditioners
func (h *AirConHandler) Create(c *gin.Context) {
	var req dto.CreateAirConRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	aircon, err := h.airconSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, aircon)
}

// Get エアコン取得
// GET /api/v1/air-conditioners/:id
func (h *AirConHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	aircon, err := h.airconSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAirConNotFound) {
			response.NotFound(c, 23001, "エアコンが見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, aircon)
}

// Update エアコン更新
// PUT /api/v1/air-conditioners/:id
func (h *AirConHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAirConRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	aircon, err := h.airconSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrAirConNotFound) {
			response.NotFound(c, 23001, "エアコンが見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, aircon)
}

// Delete エアコン削除
// DELETE /api/v1/air-conditioners/:id
func (h *AirConHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.airconSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAirConNotFound) {
			response.NotFound(c, 23001, "エアコンが見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
