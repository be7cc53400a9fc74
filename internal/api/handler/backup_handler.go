package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

// BackupHandler バックアップモジュール HTTP ハンドラ（管理者専用）
type BackupHandler struct {
	backupSvc service.BackupService
}

// NewBackupHandler BackupHandler を生成する
func NewBackupHandler(backupSvc service.BackupService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc}
}

// Backup 全データの JSON ダンプをダウンロードする
// GET /api/v1/admin/backup
func (h *BackupHandler) Backup(c *gin.Context) {
	data, filename, err := h.backupSvc.Backup(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/json", data)
}

// Restore JSON ダンプから全データを復元する。既存データは置き換えられる
// POST /api/v1/admin/restore
func (h *BackupHandler) Restore(c *gin.Context) {
	// multipart とボディ直接投入の両方に対応する
	var data []byte
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.InternalError(c)
			return
		}
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			response.InternalError(c)
			return
		}
	} else {
		var err error
		data, err = io.ReadAll(c.Request.Body)
		if err != nil || len(data) == 0 {
			response.BadRequest(c, 10001, "バックアップデータがありません")
			return
		}
	}

	if err := h.backupSvc.Restore(c.Request.Context(), data); err != nil {
		switch {
		case errors.Is(err, service.ErrBackupInvalidFormat):
			response.BadRequest(c, 29001, "バックアップデータの形式が不正です")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
