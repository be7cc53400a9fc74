package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// PhotoHandler 写真モジュール HTTP ハンドラ
type PhotoHandler struct {
	photoSvc service.PhotoService
}

// NewPhotoHandler PhotoHandler を生成する
func NewPhotoHandler(photoSvc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoSvc: photoSvc}
}

// Upload 写真アップロード（multipart）
// POST /api/v1/reports/:id/photos
func (h *PhotoHandler) Upload(c *gin.Context) {
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form dto.UploadPhotoForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "ファイルがありません")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c)
		return
	}

	photo, err := h.photoSvc.Upload(c.Request.Context(), reportID, &form, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			response.NotFound(c, 25001, "報告書が見つかりません")
		case errors.Is(err, service.ErrUnsupportedImageType):
			response.BadRequest(c, 26002, "対応していない画像形式です")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, photo)
}

// ListByReport 報告書の写真一覧
// GET /api/v1/reports/:id/photos
func (h *PhotoHandler) ListByReport(c *gin.Context) {
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	photos, err := h.photoSvc.ListByReport(c.Request.Context(), reportID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, photos)
}

// Serve 写真ファイル配信
// GET /api/v1/photos/:id/file
func (h *PhotoHandler) Serve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	photo, err := h.photoSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			response.NotFound(c, 26001, "写真が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	path, err := h.photoSvc.FilePath(photo)
	if err != nil {
		response.InternalError(c)
		return
	}
	c.File(path)
}

// Update 写真メタデータ更新
// PUT /api/v1/photos/:id
func (h *PhotoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータ検証に失敗しました")
		return
	}

	photo, err := h.photoSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			response.NotFound(c, 26001, "写真が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, photo)
}

// Delete 写真削除（ファイルも削除）
// DELETE /api/v1/photos/:id
func (h *PhotoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.photoSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			response.NotFound(c, 26001, "写真が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
