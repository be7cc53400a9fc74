package service

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

// 写真モジュールの業務エラー
var (
	ErrPhotoNotFound        = errors.New("写真が見つかりません")
	ErrUnsupportedImageType = errors.New("対応していない画像形式です")
)

// PhotoService 写真ビジネスインターフェース
type PhotoService interface {
	Upload(ctx context.Context, reportID uint, form *dto.UploadPhotoForm, originalName string, data []byte) (*model.Photo, error)
	Get(ctx context.Context, id uint) (*model.Photo, error)
	ListByReport(ctx context.Context, reportID uint) ([]model.Photo, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePhotoRequest) (*model.Photo, error)
	Delete(ctx context.Context, id uint) error
	// FilePath 配信用の絶対パスを返す
	FilePath(photo *model.Photo) (string, error)
}

type photoService struct {
	repo   *repository.Repository
	store  *storage.Store
	logger *zap.Logger
}

// NewPhotoService PhotoService を生成する
func NewPhotoService(repo *repository.Repository, store *storage.Store, logger *zap.Logger) PhotoService {
	return &photoService{repo: repo, store: store, logger: logger}
}

func (s *photoService) Upload(ctx context.Context, reportID uint, form *dto.UploadPhotoForm, originalName string, data []byte) (*model.Photo, error) {
	if !storage.AllowedImageExt(originalName) {
		return nil, ErrUnsupportedImageType
	}

	report, err := s.repo.Report.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	// 保存階層の各成分を名前解決する（欠損は storage 側で "unknown" になる）
	var customerName string
	if report.Property != nil && report.Property.Customer != nil {
		customerName = report.Property.Customer.DisplayName()
	}
	var airconDesc string
	if form.AirConditionerID != nil {
		if ac, err := s.repo.AirConditioner.GetByID(ctx, *form.AirConditionerID); err == nil {
			airconDesc = ac.Summary()
		}
	}
	var workItemName string
	if form.WorkItemID != nil {
		if wi, err := s.repo.WorkItem.GetByID(ctx, *form.WorkItemID); err == nil {
			workItemName = wi.Name
		}
	}
	workDate := time.Now()
	if report.Date != nil {
		workDate = *report.Date
	}

	dir := storage.PhotoDir(form.PhotoType, customerName, report.PropertyID, airconDesc, workItemName, workDate)
	rel, err := s.store.SavePhoto(dir, originalName, data)
	if err != nil {
		s.logger.Error("写真ファイルの保存に失敗", zap.Uint("report_id", reportID), zap.Error(err))
		return nil, err
	}

	photo := &model.Photo{
		ReportID:         reportID,
		AirConditionerID: form.AirConditionerID,
		WorkItemID:       form.WorkItemID,
		PhotoType:        form.PhotoType,
		Filename:         filepath.Base(rel),
		OriginalFilename: originalName,
		Filepath:         rel,
		Caption:          form.Caption,
		RoomName:         form.RoomName,
	}
	if err := s.repo.Photo.Create(ctx, photo); err != nil {
		// DB 登録に失敗したファイルは残さない
		if rmErr := s.store.Remove(rel); rmErr != nil {
			s.logger.Warn("孤立ファイルの削除に失敗", zap.String("path", rel), zap.Error(rmErr))
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Get(ctx context.Context, id uint) (*model.Photo, error) {
	photo, err := s.repo.Photo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) ListByReport(ctx context.Context, reportID uint) ([]model.Photo, error) {
	return s.repo.Photo.ListByReport(ctx, reportID)
}

func (s *photoService) Update(ctx context.Context, id uint, req *dto.UpdatePhotoRequest) (*model.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhotoType != nil {
		photo.PhotoType = *req.PhotoType
	}
	if req.AirConditionerID != nil {
		photo.AirConditionerID = req.AirConditionerID
	}
	if req.WorkItemID != nil {
		photo.WorkItemID = req.WorkItemID
	}
	if req.Caption != nil {
		photo.Caption = *req.Caption
	}
	if req.RoomName != nil {
		photo.RoomName = *req.RoomName
	}

	if err := s.repo.Photo.Update(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Delete(ctx context.Context, id uint) error {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Remove(photo.Filepath); err != nil {
		s.logger.Warn("写真ファイルの削除に失敗", zap.String("path", photo.Filepath), zap.Error(err))
	}
	return s.repo.Photo.Delete(ctx, id)
}

func (s *photoService) FilePath(photo *model.Photo) (string, error) {
	return s.store.AbsPath(photo.Filepath)
}
