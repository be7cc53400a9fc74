package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// ScheduleFilter スケジュール検索条件
type ScheduleFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

// ScheduleRepository スケジュールデータアクセスインターフェース
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id uint) (*model.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, int64, error)
	// ListRange 期間に重なるスケジュールを返す（カレンダーフィード・ICS 用）
	ListRange(ctx context.Context, from, to time.Time) ([]model.Schedule, error)
	ListByReport(ctx context.Context, reportID uint) ([]model.Schedule, error)
	// ListNotifiable 通知対象（notification_enabled かつ pending）を返す
	ListNotifiable(ctx context.Context) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	// UpdateFields 指定フィールドのみ更新する（ステータス同期・切り離し用）
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	DeleteByReport(ctx context.Context, reportID uint) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id uint) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Property").
		Preload("Report").
		First(&schedule, id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, int64, error) {
	var schedules []model.Schedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Schedule{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("end_datetime >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("start_datetime <= ?", *filter.To)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Customer").Preload("Property").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("start_datetime ASC, id ASC").
		Find(&schedules).Error
	return schedules, total, err
}

func (r *scheduleRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Property").
		Where("start_datetime <= ? AND end_datetime >= ?", to, from).
		Order("start_datetime ASC, id ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByReport(ctx context.Context, reportID uint) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("start_datetime ASC, id ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListNotifiable(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Creator").
		Where("notification_enabled = ? AND status = ?", true, model.ScheduleStatusPending).
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Schedule{}, id).Error
}

func (r *scheduleRepo) DeleteByReport(ctx context.Context, reportID uint) error {
	return r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&model.Schedule{}).Error
}
