package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// WorkItemRepository 作業項目マスタデータアクセスインターフェース
type WorkItemRepository interface {
	Create(ctx context.Context, item *model.WorkItem) error
	GetByID(ctx context.Context, id uint) (*model.WorkItem, error)
	GetByName(ctx context.Context, name string) (*model.WorkItem, error)
	List(ctx context.Context, activeOnly bool) ([]model.WorkItem, error)
	Update(ctx context.Context, item *model.WorkItem) error
	Delete(ctx context.Context, id uint) error
}

type workItemRepo struct {
	db *gorm.DB
}

func NewWorkItemRepo(db *gorm.DB) WorkItemRepository {
	return &workItemRepo{db: db}
}

func (r *workItemRepo) Create(ctx context.Context, item *model.WorkItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *workItemRepo) GetByID(ctx context.Context, id uint) (*model.WorkItem, error) {
	var item model.WorkItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *workItemRepo) GetByName(ctx context.Context, name string) (*model.WorkItem, error) {
	var item model.WorkItem
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *workItemRepo) List(ctx context.Context, activeOnly bool) ([]model.WorkItem, error) {
	var items []model.WorkItem
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("sort_order ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *workItemRepo) Update(ctx context.Context, item *model.WorkItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *workItemRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WorkItem{}, id).Error
}
