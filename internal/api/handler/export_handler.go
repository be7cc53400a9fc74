package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler エクスポートモジュール HTTP ハンドラ
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler を生成する
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// OrderDetails 受注明細一覧の Excel ダウンロード
// GET /api/v1/export/order-details.xlsx
func (h *ExportHandler) OrderDetails(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportOrderDetails(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoDetails):
			response.NotFound(c, 28001, "出力対象の作業明細がありません")
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
