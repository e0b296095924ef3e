package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"go.uber.org/zap"
)

// SupplierService 공급업체 서비스
type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

func NewSupplierService(supplierRepo *repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// CreateSupplierRequest 공급업체 등록 요청
type CreateSupplierRequest struct {
	SupplierCode  string `json:"supplier_code" binding:"required"`
	SupplierName  string `json:"supplier_name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// UpdateSupplierRequest 공급업체 수정 요청
type UpdateSupplierRequest struct {
	SupplierName  string `json:"supplier_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (s *SupplierService) List(ctx context.Context, params repository.SupplierListParams) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, params)
}

func (s *SupplierService) Get(ctx context.Context, id int64) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return supplier, nil
}

// Create 공급업체 등록. 코드 중복이면 insert 없이 거절한다.
func (s *SupplierService) Create(ctx context.Context, req *CreateSupplierRequest, createdBy string) (*entity.Supplier, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.SupplierCode)
	if err != nil {
		return nil, fmt.Errorf("check supplier code: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCode
	}

	now := time.Now()
	supplier := &entity.Supplier{
		SupplierCode:  req.SupplierCode,
		SupplierName:  req.SupplierName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		CreatedBy:     createdBy,
		UpdatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id int64, req *UpdateSupplierRequest, updatedBy string) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.SupplierName != "" {
		supplier.SupplierName = req.SupplierName
	}
	supplier.ContactPerson = req.ContactPerson
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.UpdatedBy = updatedBy
	supplier.UpdatedAt = time.Now()

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.supplierRepo.Delete(ctx, id)
}
