package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// WorkDetailRepository 作業明細データアクセスインターフェース
type WorkDetailRepository interface {
	BatchCreate(ctx context.Context, details []model.WorkDetail) error
	ListByReport(ctx context.Context, reportID uint) ([]model.WorkDetail, error)
	// ListAll 受注明細一覧（Excel エクスポート用）。関連をプリロードして返す
	ListAll(ctx context.Context) ([]model.WorkDetail, error)
	DeleteByReport(ctx context.Context, reportID uint) error
}

type workDetailRepo struct {
	db *gorm.DB
}

func NewWorkDetailRepo(db *gorm.DB) WorkDetailRepository {
	return &workDetailRepo{db: db}
}

func (r *workDetailRepo) BatchCreate(ctx context.Context, details []model.WorkDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *workDetailRepo) ListByReport(ctx context.Context, reportID uint) ([]model.WorkDetail, error) {
	var details []model.WorkDetail
	err := r.db.WithContext(ctx).
		Preload("AirConditioner").
		Preload("WorkItem").
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&details).Error
	return details, err
}

func (r *workDetailRepo) ListAll(ctx context.Context) ([]model.WorkDetail, error) {
	var details []model.WorkDetail
	err := r.db.WithContext(ctx).
		Preload("AirConditioner").
		Preload("WorkItem").
		Order("report_id ASC, id ASC").
		Find(&details).Error
	return details, err
}

func (r *workDetailRepo) DeleteByReport(ctx context.Context, reportID uint) error {
	return r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&model.WorkDetail{}).Error
}
