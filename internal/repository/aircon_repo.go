package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// AirConditionerRepository エアコンデータアクセスインターフェース
type AirConditionerRepository interface {
	Create(ctx context.Context, ac *model.AirConditioner) error
	GetByID(ctx context.Context, id uint) (*model.AirConditioner, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]model.AirConditioner, error)
	Update(ctx context.Context, ac *model.AirConditioner) error
	Delete(ctx context.Context, id uint) error
}

type airConditionerRepo struct {
	db *gorm.DB
}

func NewAirConditionerRepo(db *gorm.DB) AirConditionerRepository {
	return &airConditionerRepo{db: db}
}

func (r *airConditionerRepo) Create(ctx context.Context, ac *model.AirConditioner) error {
	return r.db.WithContext(ctx).Create(ac).Error
}

func (r *airConditionerRepo) GetByID(ctx context.Context, id uint) (*model.AirConditioner, error) {
	var ac model.AirConditioner
	err := r.db.WithContext(ctx).
		Preload("Property").
		First(&ac, id).Error
	if err != nil {
		return nil, err
	}
	return &ac, nil
}

func (r *airConditionerRepo) ListByProperty(ctx context.Context, propertyID uint) ([]model.AirConditioner, error) {
	var acs []model.AirConditioner
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Find(&acs).Error
	return acs, err
}

func (r *airConditionerRepo) Update(ctx context.Context, ac *model.AirConditioner) error {
	return r.db.WithContext(ctx).Save(ac).Error
}

func (r *airConditionerRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.AirConditioner{}, id).Error
}
