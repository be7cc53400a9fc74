package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// CustomerHandler 顧客モジュール HTTP ハンドラ
type CustomerHandler struct {
	customerSvc service.CustomerService
	propertySvc service.PropertyService
}

// NewCustomerHandler CustomerHandler を生成する
func NewCustomerHandler(customerSvc service.CustomerService, propertySvc service.PropertyService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc, propertySvc: propertySvc}
}

// Create 顧客作成
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	customer, err := h.customerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, customer)
}

// Get 顧客取得
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, 21001, "顧客が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, customer)
}

// List 顧客一覧（名前・会社名・住所の部分一致検索付き）
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	customers, total, err := h.customerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, customers, total, req.GetPage(), req.GetPageSize())
}

// Update 顧客更新
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	customer, err := h.customerSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, 21001, "顧客が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, customer)
}

// Delete 顧客削除
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, 21001, "顧客が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListProperties 顧客配下の物件一覧
// GET /api/v1/customers/:id/properties
func (h *CustomerHandler) ListProperties(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	properties, err := h.propertySvc.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, properties)
}
