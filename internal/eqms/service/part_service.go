package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PartService 부품 서비스
type PartService struct {
	partRepo  *repository.PartRepository
	priceRepo *repository.PriceRepository
	store     cache.Store
	logger    *zap.Logger
}

func NewPartService(partRepo *repository.PartRepository, priceRepo *repository.PriceRepository, store cache.Store, logger *zap.Logger) *PartService {
	return &PartService{
		partRepo:  partRepo,
		priceRepo: priceRepo,
		store:     store,
		logger:    logger,
	}
}

// CreatePartRequest 부품 등록 요청
type CreatePartRequest struct {
	PartCode       string `json:"part_code" binding:"required"`
	PartName       string `json:"part_name" binding:"required"`
	KoreanName     string `json:"korean_name"`
	VietnameseName string `json:"vietnamese_name"`
	Category       string `json:"category"`
	Unit           string `json:"unit"`
	Spec           string `json:"spec"`
	MinStock       *int64 `json:"min_stock"`
	Status         string `json:"status"`
	Description    string `json:"description"`
}

// UpdatePartRequest 부품 수정 요청
type UpdatePartRequest struct {
	PartName       string `json:"part_name"`
	KoreanName     string `json:"korean_name"`
	VietnameseName string `json:"vietnamese_name"`
	Category       string `json:"category"`
	Unit           string `json:"unit"`
	Spec           string `json:"spec"`
	MinStock       *int64 `json:"min_stock"`
	Status         string `json:"status"`
	Description    string `json:"description"`
}

func (s *PartService) List(ctx context.Context, params repository.PartListParams) ([]entity.Part, int64, error) {
	return s.partRepo.List(ctx, params)
}

func (s *PartService) Get(ctx context.Context, id int64) (*entity.Part, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return part, nil
}

// Create 부품 등록. 코드 중복이면 어떤 insert도 하지 않고 거절한다.
// 부품과 초기 재고 행은 한 트랜잭션으로 만들어진다.
func (s *PartService) Create(ctx context.Context, req *CreatePartRequest, createdBy string) (*entity.Part, error) {
	exists, err := s.partRepo.ExistsByCode(ctx, req.PartCode)
	if err != nil {
		return nil, fmt.Errorf("check part code: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCode
	}

	status := req.Status
	if status == "" {
		status = entity.PartStatusNew
	}
	unit := req.Unit
	if unit == "" {
		unit = "EA"
	}

	now := time.Now()
	part := &entity.Part{
		PartCode:       req.PartCode,
		PartName:       req.PartName,
		KoreanName:     req.KoreanName,
		VietnameseName: req.VietnameseName,
		Category:       req.Category,
		Unit:           unit,
		Spec:           req.Spec,
		MinStock:       req.MinStock,
		Status:         status,
		Description:    req.Description,
		CreatedBy:      createdBy,
		UpdatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.partRepo.CreateWithInventory(ctx, part); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}

	s.invalidate(ctx)
	return part, nil
}

func (s *PartService) Update(ctx context.Context, id int64, req *UpdatePartRequest, updatedBy string) (*entity.Part, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.PartName != "" {
		part.PartName = req.PartName
	}
	part.KoreanName = req.KoreanName
	part.VietnameseName = req.VietnameseName
	part.Category = req.Category
	if req.Unit != "" {
		part.Unit = req.Unit
	}
	part.Spec = req.Spec
	if req.MinStock != nil {
		part.MinStock = req.MinStock
	}
	if req.Status != "" {
		part.Status = req.Status
	}
	part.Description = req.Description
	part.UpdatedBy = updatedBy
	part.UpdatedAt = time.Now()

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}

	s.invalidate(ctx)
	return part, nil
}

func (s *PartService) Delete(ctx context.Context, id int64) error {
	if _, err := s.partRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if err := s.partRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Categories 카테고리 목록. 자주 안 바뀌므로 1시간 캐시한다.
func (s *PartService) Categories(ctx context.Context) ([]string, error) {
	var cached []string
	if cache.GetJSON(ctx, s.store, cacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.partRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cache.SetJSON(ctx, s.store, cacheKeyCategories, categories, cache.CategoryTTL)
	return categories, nil
}

// Prices 부품의 단가 이력
func (s *PartService) Prices(ctx context.Context, partID int64) ([]entity.PartPrice, error) {
	if _, err := s.partRepo.FindByID(ctx, partID); err != nil {
		return nil, ErrNotFound
	}
	return s.priceRepo.ListByPart(ctx, partID)
}

// AddPriceRequest 단가 등록 요청
type AddPriceRequest struct {
	SupplierID    int64           `json:"supplier_id"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Currency      string          `json:"currency"`
	EffectiveDate string          `json:"effective_date"` // YYYY-MM-DD
}

// AddPrice 새 현재 단가 등록. 기존 현재 단가는 이력으로 내린다.
func (s *PartService) AddPrice(ctx context.Context, partID int64, req *AddPriceRequest, createdBy string) (*entity.PartPrice, error) {
	if _, err := s.partRepo.FindByID(ctx, partID); err != nil {
		return nil, ErrNotFound
	}

	effectiveDate := time.Now()
	if req.EffectiveDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("적용일 형식이 올바르지 않습니다: %w", err)
		}
		effectiveDate = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	price := &entity.PartPrice{
		PartID:        partID,
		SupplierID:    req.SupplierID,
		UnitPrice:     req.UnitPrice,
		Currency:      currency,
		EffectiveDate: effectiveDate,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}
	if err := s.priceRepo.SetCurrent(ctx, price); err != nil {
		return nil, fmt.Errorf("set current price: %w", err)
	}

	s.invalidate(ctx)
	return price, nil
}

// invalidate 부품이 바뀌면 카테고리 목록과 집계 캐시를 함께 비운다.
func (s *PartService) invalidate(ctx context.Context) {
	s.store.Delete(ctx, cacheKeyCategories, cacheKeyLowStock, cacheKeyAnalysis)
}
