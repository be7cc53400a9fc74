package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// ReportFilter 報告書検索条件
type ReportFilter struct {
	Status string // 空なら全ステータス
	Query  string // 顧客名・物件名・住所・備考の横断検索
	Offset int
	Limit  int
}

// ReportRepository 報告書データアクセスインターフェース
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id uint) (*model.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]model.Report, int64, error)
	Update(ctx context.Context, report *model.Report) error
	// Delete 報告書と所有行（作業時間・作業明細・写真）を削除する
	Delete(ctx context.Context, id uint) error
	// ListDescriptions 過去の作業明細 description を新しい順に重複なしで返す
	ListDescriptions(ctx context.Context, limit int) ([]string, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Customer").
		Preload("WorkTimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_date ASC, start_time ASC")
		}).
		Preload("WorkDetails").
		Preload("WorkDetails.AirConditioner").
		Preload("WorkDetails.WorkItem").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Photos.AirConditioner").
		Preload("Photos.WorkItem").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, filter ReportFilter) ([]model.Report, int64, error) {
	var reports []model.Report
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Report{}).
		Joins("JOIN properties ON properties.id = reports.property_id").
		Joins("JOIN customers ON customers.id = properties.customer_id")

	if filter.Status != "" {
		db = db.Where("reports.status = ?", filter.Status)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		db = db.Where(
			"customers.name ILIKE ? OR properties.name ILIKE ? OR reports.work_address ILIKE ? OR reports.note ILIKE ?",
			like, like, like, like,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Property").
		Preload("Property.Customer").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("reports.date DESC NULLS LAST, reports.id DESC").
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepo) Update(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&model.WorkTime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&model.WorkDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&model.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Report{}, id).Error
	})
}

func (r *reportRepo) ListDescriptions(ctx context.Context, limit int) ([]string, error) {
	var descriptions []string
	err := r.db.WithContext(ctx).Model(&model.WorkDetail{}).
		Distinct("description").
		Where("description <> ''").
		Order("description ASC").
		Limit(limit).
		Pluck("description", &descriptions).Error
	return descriptions, err
}
