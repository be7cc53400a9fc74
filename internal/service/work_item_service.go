package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
)

var (
	ErrWorkItemNotFound      = errors.New("作業項目が見つかりません")
	ErrWorkItemAlreadyExists = errors.New("同名の作業項目が既に存在します")
)

// WorkItemService 作業項目マスタ管理ビジネスインターフェース
type WorkItemService interface {
	Create(ctx context.Context, req *dto.CreateWorkItemRequest) (*model.WorkItem, error)
	Get(ctx context.Context, id uint) (*model.WorkItem, error)
	List(ctx context.Context, activeOnly bool) ([]model.WorkItem, error)
	Update(ctx context.Context, id uint, req *dto.UpdateWorkItemRequest) (*model.WorkItem, error)
	Delete(ctx context.Context, id uint) error
}

type workItemService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkItemService WorkItemService を生成する
func NewWorkItemService(repo *repository.Repository, logger *zap.Logger) WorkItemService {
	return &workItemService{repo: repo, logger: logger}
}

func (s *workItemService) Create(ctx context.Context, req *dto.CreateWorkItemRequest) (*model.WorkItem, error) {
	if _, err := s.repo.WorkItem.GetByName(ctx, req.Name); err == nil {
		return nil, ErrWorkItemAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.WorkItem{
		Name:        req.Name,
		Description: req.Description,
		WorkAmount:  req.WorkAmount,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.WorkItem.Create(ctx, item); err != nil {
		s.logger.Error("作業項目の作成に失敗", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *workItemService) Get(ctx context.Context, id uint) (*model.WorkItem, error) {
	item, err := s.repo.WorkItem.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *workItemService) List(ctx context.Context, activeOnly bool) ([]model.WorkItem, error) {
	return s.repo.WorkItem.List(ctx, activeOnly)
}

func (s *workItemService) Update(ctx context.Context, id uint, req *dto.UpdateWorkItemRequest) (*model.WorkItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.WorkAmount != nil {
		item.WorkAmount = *req.WorkAmount
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.repo.WorkItem.Update(ctx, item); err != nil {
		s.logger.Error("作業項目の更新に失敗", zap.Uint("work_item_id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *workItemService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.WorkItem.Delete(ctx, id)
}
