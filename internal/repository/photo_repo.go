package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// PhotoRepository 写真データアクセスインターフェース
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	GetByID(ctx context.Context, id uint) (*model.Photo, error)
	ListByReport(ctx context.Context, reportID uint) ([]model.Photo, error)
	Update(ctx context.Context, photo *model.Photo) error
	Delete(ctx context.Context, id uint) error
}

type photoRepo struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) PhotoRepository {
	return &photoRepo{db: db}
}

func (r *photoRepo) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepo) GetByID(ctx context.Context, id uint) (*model.Photo, error) {
	var photo model.Photo
	err := r.db.WithContext(ctx).
		Preload("AirConditioner").
		Preload("WorkItem").
		First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepo) ListByReport(ctx context.Context, reportID uint) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.WithContext(ctx).
		Preload("AirConditioner").
		Preload("WorkItem").
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&photos).Error
	return photos, err
}

func (r *photoRepo) Update(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

func (r *photoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Photo{}, id).Error
}
