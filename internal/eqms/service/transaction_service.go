package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 참조 번호 접두사
const (
	inboundRefPrefix  = "IN"
	outboundRefPrefix = "OUT"
)

// TransactionService 입출고 서비스
type TransactionService struct {
	txRepo    *repository.TransactionRepository
	partRepo  *repository.PartRepository
	invRepo   *repository.InventoryRepository
	priceRepo *repository.PriceRepository
	store     cache.Store
	logger    *zap.Logger
}

func NewTransactionService(txRepo *repository.TransactionRepository, partRepo *repository.PartRepository, invRepo *repository.InventoryRepository, priceRepo *repository.PriceRepository, store cache.Store, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo:    txRepo,
		partRepo:  partRepo,
		invRepo:   invRepo,
		priceRepo: priceRepo,
		store:     store,
		logger:    logger,
	}
}

// CreateInboundRequest 입고 등록 요청
type CreateInboundRequest struct {
	PartID      int64           `json:"part_id" binding:"required"`
	SupplierID  int64           `json:"supplier_id"`
	Quantity    int64           `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
	InboundDate string          `json:"inbound_date"` // YYYY-MM-DD, 비우면 오늘
	Notes       string          `json:"notes"`
}

// CreateOutboundRequest 출고 등록 요청
type CreateOutboundRequest struct {
	PartID       int64  `json:"part_id" binding:"required"`
	Quantity     int64  `json:"quantity" binding:"required"`
	OutboundDate string `json:"outbound_date"`
	Requester    string `json:"requester"`
	Department   string `json:"department"`
	Equipment    string `json:"equipment"`
	Purpose      string `json:"purpose"`
	Notes        string `json:"notes"`
}

func (s *TransactionService) ListInbound(ctx context.Context, params repository.InboundListParams) ([]entity.Inbound, int64, error) {
	return s.txRepo.ListInbound(ctx, params)
}

func (s *TransactionService) ListOutbound(ctx context.Context, params repository.OutboundListParams) ([]entity.Outbound, int64, error) {
	return s.txRepo.ListOutbound(ctx, params)
}

func parseDateOrToday(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", value)
}

// CreateInbound 입고 등록. 재고를 가산하고, 단가가 현재 단가와 다르면
// 새 현재 단가로 올린다.
func (s *TransactionService) CreateInbound(ctx context.Context, req *CreateInboundRequest, createdBy string) (*entity.Inbound, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("입고 수량은 1 이상이어야 합니다")
	}
	if _, err := s.partRepo.FindByID(ctx, req.PartID); err != nil {
		return nil, ErrNotFound
	}

	inboundDate, err := parseDateOrToday(req.InboundDate)
	if err != nil {
		return nil, fmt.Errorf("입고일 형식이 올바르지 않습니다: %w", err)
	}

	reference, err := s.txRepo.NextReference(ctx, entity.Inbound{}.TableName(), inboundRefPrefix, inboundDate)
	if err != nil {
		return nil, fmt.Errorf("reference number: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	row := &entity.Inbound{
		PartID:          req.PartID,
		SupplierID:      req.SupplierID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Currency:        currency,
		InboundDate:     inboundDate,
		ReferenceNumber: reference,
		Notes:           req.Notes,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}
	if err := s.txRepo.CreateInbound(ctx, row); err != nil {
		return nil, fmt.Errorf("create inbound: %w", err)
	}

	if err := s.invRepo.AddQuantity(ctx, req.PartID, req.Quantity, createdBy); err != nil {
		return nil, fmt.Errorf("add quantity: %w", err)
	}

	s.maybePromotePrice(ctx, row, createdBy)
	s.invalidate(ctx)
	return row, nil
}

// maybePromotePrice 입고 단가가 현재 단가와 다르면 새 현재 단가로 등록한다.
// 단가 갱신 실패는 입고 자체를 되돌리지 않고 로그만 남긴다.
func (s *TransactionService) maybePromotePrice(ctx context.Context, row *entity.Inbound, createdBy string) {
	if !row.UnitPrice.IsPositive() {
		return
	}

	current, err := s.priceRepo.CurrentByPartAndSupplier(ctx, row.PartID, row.SupplierID)
	if err == nil && current.UnitPrice.Equal(row.UnitPrice) {
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("현재 단가 조회 실패", zap.Int64("part_id", row.PartID), zap.Error(err))
		return
	}

	price := &entity.PartPrice{
		PartID:        row.PartID,
		SupplierID:    row.SupplierID,
		UnitPrice:     row.UnitPrice,
		Currency:      row.Currency,
		EffectiveDate: row.InboundDate,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}
	if err := s.priceRepo.SetCurrent(ctx, price); err != nil {
		s.logger.Warn("입고 단가 반영 실패", zap.Int64("part_id", row.PartID), zap.Error(err))
	}
}

// CreateOutbound 출고 등록. 재고를 차감하되 0 아래로는 내려가지 않는다.
func (s *TransactionService) CreateOutbound(ctx context.Context, req *CreateOutboundRequest, createdBy string) (*entity.Outbound, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("출고 수량은 1 이상이어야 합니다")
	}
	if _, err := s.partRepo.FindByID(ctx, req.PartID); err != nil {
		return nil, ErrNotFound
	}

	outboundDate, err := parseDateOrToday(req.OutboundDate)
	if err != nil {
		return nil, fmt.Errorf("출고일 형식이 올바르지 않습니다: %w", err)
	}

	reference, err := s.txRepo.NextReference(ctx, entity.Outbound{}.TableName(), outboundRefPrefix, outboundDate)
	if err != nil {
		return nil, fmt.Errorf("reference number: %w", err)
	}

	row := &entity.Outbound{
		PartID:          req.PartID,
		Quantity:        req.Quantity,
		OutboundDate:    outboundDate,
		Requester:       req.Requester,
		Department:      req.Department,
		Equipment:       req.Equipment,
		Purpose:         req.Purpose,
		ReferenceNumber: reference,
		Notes:           req.Notes,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}
	if err := s.txRepo.CreateOutbound(ctx, row); err != nil {
		return nil, fmt.Errorf("create outbound: %w", err)
	}

	if err := s.invRepo.SubtractQuantity(ctx, req.PartID, req.Quantity, createdBy); err != nil {
		return nil, fmt.Errorf("subtract quantity: %w", err)
	}

	s.invalidate(ctx)
	return row, nil
}

// InOutReport 기간별 입출고 보고서
func (s *TransactionService) InOutReport(ctx context.Context, from, to time.Time) ([]repository.InOutTotal, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("조회 기간이 올바르지 않습니다")
	}
	return s.txRepo.InOutTotals(ctx, from, to)
}

func (s *TransactionService) invalidate(ctx context.Context) {
	s.store.Delete(ctx, cacheKeyLowStock, cacheKeyAnalysis)
}
