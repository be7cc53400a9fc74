package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// WorkTimeRepository 作業時間データアクセスインターフェース
type WorkTimeRepository interface {
	BatchCreate(ctx context.Context, times []model.WorkTime) error
	ListByReport(ctx context.Context, reportID uint) ([]model.WorkTime, error)
	DeleteByReport(ctx context.Context, reportID uint) error
}

type workTimeRepo struct {
	db *gorm.DB
}

func NewWorkTimeRepo(db *gorm.DB) WorkTimeRepository {
	return &workTimeRepo{db: db}
}

func (r *workTimeRepo) BatchCreate(ctx context.Context, times []model.WorkTime) error {
	if len(times) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&times).Error
}

func (r *workTimeRepo) ListByReport(ctx context.Context, reportID uint) ([]model.WorkTime, error) {
	var times []model.WorkTime
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("work_date ASC, start_time ASC").
		Find(&times).Error
	return times, err
}

func (r *workTimeRepo) DeleteByReport(ctx context.Context, reportID uint) error {
	return r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&model.WorkTime{}).Error
}
