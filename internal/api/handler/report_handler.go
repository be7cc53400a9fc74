package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// ReportHandler 報告書モジュール HTTP ハンドラ
type ReportHandler struct {
	reportSvc service.ReportService
	pdfSvc    service.PDFService
}

// NewReportHandler ReportHandler を生成する
func NewReportHandler(reportSvc service.ReportService, pdfSvc service.PDFService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, pdfSvc: pdfSvc}
}

// Create 報告書作成（スケジュール自動生成付き）
// POST /api/v1/reports
//
// スケジュール同期の警告は sync_warnings として応答に含める。
// 警告があっても報告書の作成自体は成功する
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	report, warnings, err := h.reportSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			response.NotFound(c, 22001, "物件が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, gin.H{
		"report":        report,
		"sync_warnings": warnings,
	})
}

// Get 報告書取得（作業時間・明細・写真込み）
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, 25001, "報告書が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, report)
}

// List 報告書一覧（ステータス絞り込み・横断検索付き）
// GET /api/v1/reports
func (h *ReportHandler) List(c *gin.Context) {
	var req dto.ReportListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	reports, total, err := h.reportSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, reports, total, req.GetPage(), req.GetPageSize())
}

// Update 報告書更新（スケジュール再同期付き）
// PUT /api/v1/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	report, warnings, err := h.reportSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, 25001, "報告書が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"report":        report,
		"sync_warnings": warnings,
	})
}

// Delete 報告書削除。
// 連動スケジュールは削除せずキャンセル扱いで切り離す
// DELETE /api/v1/reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	warnings, err := h.reportSvc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, 25001, "報告書が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"sync_warnings": warnings})
}

// ListDescriptions 過去の作業内容の入力候補
// GET /api/v1/reports/descriptions?limit=50
func (h *ReportHandler) ListDescriptions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	descriptions, err := h.reportSvc.ListDescriptions(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, descriptions)
}

// DownloadPDF 報告書 PDF のダウンロード
// GET /api/v1/reports/:id/pdf?save=true
//
// save=true の場合は生成した PDF をアップロードルート配下にも保存する
func (h *ReportHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, 25001, "報告書が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	saveToDisk := c.Query("save") == "true"
	data, _, err := h.pdfSvc.GenerateReportPDF(c.Request.Context(), id, saveToDisk)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := url.QueryEscape(h.pdfSvc.DownloadFilename(report))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
