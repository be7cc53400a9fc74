package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// CustomerRepository 顧客データアクセスインターフェース
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, query string, offset, limit int) ([]model.Customer, int64, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uint) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) GetByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Preload("Properties").
		First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context, query string, offset, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Customer{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name ILIKE ? OR company_name ILIKE ? OR address ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC, id ASC").
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}
