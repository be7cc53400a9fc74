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

var ErrCustomerNotFound = errors.New("顧客が見つかりません")

// CustomerService 顧客管理ビジネスインターフェース
type CustomerService interface {
	Create(ctx context.Context, req *dto.CreateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, req *dto.CustomerListRequest) ([]model.Customer, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCustomerService CustomerService を生成する
func NewCustomerService(repo *repository.Repository, logger *zap.Logger) CustomerService {
	return &customerService{repo: repo, logger: logger}
}

func (s *customerService) Create(ctx context.Context, req *dto.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		PostalCode:  req.PostalCode,
		Address:     req.Address,
		Note:        req.Note,
	}
	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		s.logger.Error("顧客の作成に失敗", zap.Error(err))
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.repo.Customer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, req *dto.CustomerListRequest) ([]model.Customer, int64, error) {
	return s.repo.Customer.List(ctx, req.Query, req.GetOffset(), req.GetPageSize())
}

func (s *customerService) Update(ctx context.Context, id uint, req *dto.UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Note != nil {
		customer.Note = *req.Note
	}

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.logger.Error("顧客の更新に失敗", zap.Uint("customer_id", id), zap.Error(err))
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Customer.Delete(ctx, id)
}
