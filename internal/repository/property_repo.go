package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// PropertyRepository 物件データアクセスインターフェース
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id uint) (*model.Property, error)
	List(ctx context.Context, query string, offset, limit int) ([]model.Property, int64, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Property, error)
	Update(ctx context.Context, property *model.Property) error
	Delete(ctx context.Context, id uint) error
}

type propertyRepo struct {
	db *gorm.DB
}

func NewPropertyRepo(db *gorm.DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepo) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("AirConditioners").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepo) List(ctx context.Context, query string, offset, limit int) ([]model.Property, int64, error) {
	var properties []model.Property
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Property{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name ILIKE ? OR address ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Customer").
		Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&properties).Error
	return properties, total, err
}

func (r *propertyRepo) ListByCustomer(ctx context.Context, customerID uint) ([]model.Property, error) {
	var properties []model.Property
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("name ASC, id ASC").
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepo) Update(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *propertyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Property{}, id).Error
}
