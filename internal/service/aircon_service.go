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

var ErrAirConNotFound = errors.New("エアコンが見つかりません")

// AirConService エアコン管理ビジネスインターフェース
type AirConService interface {
	Create(ctx context.Context, req *dto.CreateAirConRequest) (*model.AirConditioner, error)
	Get(ctx context.Context, id uint) (*model.AirConditioner, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAirConRequest) (*model.AirConditioner, error)
	Delete(ctx context.Context, id uint) error
}

type airConService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAirConService AirConService を生成する
func NewAirConService(repo *repository.Repository, logger *zap.Logger) AirConService {
	return &airConService{repo: repo, logger: logger}
}

func (s *airConService) Create(ctx context.Context, req *dto.CreateAirConRequest) (*model.AirConditioner, error) {
	if _, err := s.repo.Property.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	ac := &model.AirConditioner{
		PropertyID:   req.PropertyID,
		ACType:       req.ACType,
		Manufacturer: req.Manufacturer,
		ModelNumber:  req.ModelNumber,
		Quantity:     quantity,
		Location:     req.Location,
		UnitPrice:    req.UnitPrice,
		TotalAmount:  req.TotalAmount,
		CleaningType: req.CleaningType,
		Note:         req.Note,
	}
	if err := s.repo.AirConditioner.Create(ctx, ac); err != nil {
		s.logger.Error("エアコンの作成に失敗", zap.Error(err))
		return nil, err
	}
	return ac, nil
}

func (s *airConService) Get(ctx context.Context, id uint) (*model.AirConditioner, error) {
	ac, err := s.repo.AirConditioner.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirConNotFound
		}
		return nil, err
	}
	return ac, nil
}

func (s *airConService) Update(ctx context.Context, id uint, req *dto.UpdateAirConRequest) (*model.AirConditioner, error) {
	ac, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ACType != nil {
		ac.ACType = *req.ACType
	}
	if req.Manufacturer != nil {
		ac.Manufacturer = *req.Manufacturer
	}
	if req.ModelNumber != nil {
		ac.ModelNumber = *req.ModelNumber
	}
	if req.Quantity != nil {
		ac.Quantity = *req.Quantity
	}
	if req.Location != nil {
		ac.Location = *req.Location
	}
	if req.UnitPrice != nil {
		ac.UnitPrice = *req.UnitPrice
	}
	if req.TotalAmount != nil {
		ac.TotalAmount = *req.TotalAmount
	}
	if req.CleaningType != nil {
		ac.CleaningType = *req.CleaningType
	}
	if req.Note != nil {
		ac.Note = *req.Note
	}

	if err := s.repo.AirConditioner.Update(ctx, ac); err != nil {
		s.logger.Error("エアコンの更新に失敗", zap.Uint("air_conditioner_id", id), zap.Error(err))
		return nil, err
	}
	return ac, nil
}

func (s *airConService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.AirConditioner.Delete(ctx, id)
}
