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

var ErrPropertyNotFound = errors.New("物件が見つかりません")

// PropertyService 物件管理ビジネスインターフェース
type PropertyService interface {
	Create(ctx context.Context, req *dto.CreatePropertyRequest) (*model.Property, error)
	Get(ctx context.Context, id uint) (*model.Property, error)
	List(ctx context.Context, req *dto.PropertyListRequest) ([]model.Property, int64, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Property, error)
	// ListAirConditioners 物件配下のエアコン一覧（報告書フォームのルックアップ API）
	ListAirConditioners(ctx context.Context, propertyID uint) ([]model.AirConditioner, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePropertyRequest) (*model.Property, error)
	Delete(ctx context.Context, id uint) error
}

type propertyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPropertyService PropertyService を生成する
func NewPropertyService(repo *repository.Repository, logger *zap.Logger) PropertyService {
	return &propertyService{repo: repo, logger: logger}
}

func (s *propertyService) Create(ctx context.Context, req *dto.CreatePropertyRequest) (*model.Property, error) {
	// 顧客の存在確認
	if _, err := s.repo.Customer.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	property := &model.Property{
		CustomerID:      req.CustomerID,
		Name:            req.Name,
		PostalCode:      req.PostalCode,
		Address:         req.Address,
		ReceptionType:   req.ReceptionType,
		ReceptionDetail: req.ReceptionDetail,
		Note:            req.Note,
	}
	if err := s.repo.Property.Create(ctx, property); err != nil {
		s.logger.Error("物件の作成に失敗", zap.Error(err))
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id uint) (*model.Property, error) {
	property, err := s.repo.Property.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context, req *dto.PropertyListRequest) ([]model.Property, int64, error) {
	return s.repo.Property.List(ctx, req.Query, req.GetOffset(), req.GetPageSize())
}

func (s *propertyService) ListByCustomer(ctx context.Context, customerID uint) ([]model.Property, error) {
	return s.repo.Property.ListByCustomer(ctx, customerID)
}

func (s *propertyService) ListAirConditioners(ctx context.Context, propertyID uint) ([]model.AirConditioner, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.repo.AirConditioner.ListByProperty(ctx, propertyID)
}

func (s *propertyService) Update(ctx context.Context, id uint, req *dto.UpdatePropertyRequest) (*model.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.PostalCode != nil {
		property.PostalCode = *req.PostalCode
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.ReceptionType != nil {
		property.ReceptionType = *req.ReceptionType
	}
	if req.ReceptionDetail != nil {
		property.ReceptionDetail = *req.ReceptionDetail
	}
	if req.Note != nil {
		property.Note = *req.Note
	}

	if err := s.repo.Property.Update(ctx, property); err != nil {
		s.logger.Error("物件の更新に失敗", zap.Uint("property_id", id), zap.Error(err))
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Property.Delete(ctx, id)
}
