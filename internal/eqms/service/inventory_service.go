package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/batch"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 캐시 키. 재고/단가/부족 목록은 5분, 카테고리 목록은 1시간 유지.
var (
	cacheKeyLowStock   = cache.Key("inventory", "lowstock")
	cacheKeyAnalysis   = cache.Key("inventory", "analysis")
	cacheKeyCategories = cache.Key("parts", "categories")
)

type InventoryService struct {
	partRepo  *repository.PartRepository
	invRepo   *repository.InventoryRepository
	priceRepo *repository.PriceRepository
	store     cache.Store
	logger    *zap.Logger
}

func NewInventoryService(partRepo *repository.PartRepository, invRepo *repository.InventoryRepository, priceRepo *repository.PriceRepository, store cache.Store, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		partRepo:  partRepo,
		invRepo:   invRepo,
		priceRepo: priceRepo,
		store:     store,
		logger:    logger,
	}
}

// LowStockItem 재고 부족 항목
type LowStockItem struct {
	PartID          int64  `json:"part_id"`
	PartCode        string `json:"part_code"`
	PartName        string `json:"part_name"`
	KoreanName      string `json:"korean_name"`
	Category        string `json:"category"`
	Unit            string `json:"unit"`
	CurrentQuantity int64  `json:"current_quantity"`
	MinStock        int64  `json:"min_stock"`
	Shortage        int64  `json:"shortage"`
}

// CategoryStat 카테고리별 부품 수와 재고 가치
type CategoryStat struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// StatusStat 상태별 부품 수
type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// InventorySummary 재고 요약
type InventorySummary struct {
	TotalParts    int             `json:"total_parts"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockParts int             `json:"low_stock_parts"`
}

// InventoryAnalysis 재고 분석 결과
type InventoryAnalysis struct {
	Categories []CategoryStat   `json:"categories"`
	Statuses   []StatusStat     `json:"statuses"`
	Summary    InventorySummary `json:"summary"`
}

// shortageOf 수량이 기준 미만일 때만 부족량을 돌려준다.
// 부족 목록과 요약 집계가 같은 판정을 쓴다.
func shortageOf(minStock, quantity int64) (int64, bool) {
	if quantity < minStock {
		return minStock - quantity, true
	}
	return 0, false
}

// evaluateLowStock 기준 미만 부품을 골라 부족량 내림차순으로 돌려준다.
// 동률은 입력 순서를 유지한다.
func evaluateLowStock(parts []entity.Part, quantities map[int64]int64) []LowStockItem {
	items := make([]LowStockItem, 0)
	for _, p := range parts {
		minStock := p.MinStockOrZero()
		quantity := quantities[p.PartID]
		shortage, low := shortageOf(minStock, quantity)
		if !low {
			continue
		}
		items = append(items, LowStockItem{
			PartID:          p.PartID,
			PartCode:        p.PartCode,
			PartName:        p.PartName,
			KoreanName:      p.KoreanName,
			Category:        p.Category,
			Unit:            p.Unit,
			CurrentQuantity: quantity,
			MinStock:        minStock,
			Shortage:        shortage,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Shortage > items[j].Shortage
	})
	return items
}

// aggregateInventory 카테고리/상태별 집계와 요약을 만든다.
// 카테고리가 빈 부품은 기타 버킷으로, 기본 상태 네 가지는 0건이어도 나온다.
func aggregateInventory(parts []entity.Part, quantities map[int64]int64, prices map[int64]decimal.Decimal) *InventoryAnalysis {
	categoryCounts := make(map[string]int)
	categoryValues := make(map[string]decimal.Decimal)
	statusCounts := make(map[string]int, len(entity.PartStatuses))
	for _, status := range entity.PartStatuses {
		statusCounts[status] = 0
	}

	totalQuantity := int64(0)
	for _, p := range parts {
		category := p.CategoryOrOther()
		quantity := quantities[p.PartID]
		value := prices[p.PartID].Mul(decimal.NewFromInt(quantity))

		categoryCounts[category]++
		categoryValues[category] = categoryValues[category].Add(value)
		totalQuantity += quantity
		if p.Status != "" {
			statusCounts[p.Status]++
		}
	}

	categories := make([]CategoryStat, 0, len(categoryCounts))
	for category, count := range categoryCounts {
		categories = append(categories, CategoryStat{
			Category:   category,
			Count:      count,
			TotalValue: categoryValues[category],
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	statuses := make([]StatusStat, 0, len(statusCounts))
	for _, status := range entity.PartStatuses {
		statuses = append(statuses, StatusStat{Status: status, Count: statusCounts[status]})
		delete(statusCounts, status)
	}
	extra := make([]string, 0, len(statusCounts))
	for status := range statusCounts {
		extra = append(extra, status)
	}
	sort.Strings(extra)
	for _, status := range extra {
		statuses = append(statuses, StatusStat{Status: status, Count: statusCounts[status]})
	}

	totalValue := decimal.Zero
	for _, c := range categories {
		totalValue = totalValue.Add(c.TotalValue)
	}

	return &InventoryAnalysis{
		Categories: categories,
		Statuses:   statuses,
		Summary: InventorySummary{
			TotalParts:    len(parts),
			TotalQuantity: totalQuantity,
			TotalValue:    totalValue,
			LowStockParts: len(evaluateLowStock(parts, quantities)),
		},
	}
}

// Quantities 부품 ID 목록의 현재고. 배치 조회로 합치며 실패 배치는 빠진다.
func (s *InventoryService) Quantities(ctx context.Context, partIDs []int64) map[int64]int64 {
	return batch.Fetch(s.logger, partIDs, batch.DefaultSize, func(ids []int64) (map[int64]int64, error) {
		return s.invRepo.QuantityByPartIDs(ctx, ids)
	})
}

// CurrentPrices 부품 ID 목록의 현재 단가
func (s *InventoryService) CurrentPrices(ctx context.Context, partIDs []int64) map[int64]decimal.Decimal {
	return batch.Fetch(s.logger, partIDs, batch.DefaultSize, func(ids []int64) (map[int64]decimal.Decimal, error) {
		return s.priceRepo.CurrentPriceByPartIDs(ctx, ids)
	})
}

// LowStock 재고 부족 목록. 조회 실패 시 로그만 남기고 빈 목록을 돌려준다.
func (s *InventoryService) LowStock(ctx context.Context) []LowStockItem {
	var cached []LowStockItem
	if cache.GetJSON(ctx, s.store, cacheKeyLowStock, &cached) {
		return cached
	}

	parts, err := s.partRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("재고 부족 목록 조회 실패", zap.Error(err))
		return []LowStockItem{}
	}

	partIDs := make([]int64, 0, len(parts))
	for _, p := range parts {
		partIDs = append(partIDs, p.PartID)
	}

	items := evaluateLowStock(parts, s.Quantities(ctx, partIDs))
	cache.SetJSON(ctx, s.store, cacheKeyLowStock, items, cache.DataTTL)
	return items
}

// Analysis 재고 분석. 카테고리/상태 집계와 요약.
func (s *InventoryService) Analysis(ctx context.Context) (*InventoryAnalysis, error) {
	var cached InventoryAnalysis
	if cache.GetJSON(ctx, s.store, cacheKeyAnalysis, &cached) {
		return &cached, nil
	}

	parts, err := s.partRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}

	partIDs := make([]int64, 0, len(parts))
	for _, p := range parts {
		partIDs = append(partIDs, p.PartID)
	}

	analysis := aggregateInventory(parts, s.Quantities(ctx, partIDs), s.CurrentPrices(ctx, partIDs))
	cache.SetJSON(ctx, s.store, cacheKeyAnalysis, analysis, cache.DataTTL)
	return analysis, nil
}

// InventoryRow 재고 목록 한 행. 부품 정보에 현재고와 단가를 합친다.
type InventoryRow struct {
	entity.Part
	CurrentQuantity int64           `json:"current_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStock        bool            `json:"low_stock"`
}

// List 검색 조건에 맞는 부품의 재고 현황
func (s *InventoryService) List(ctx context.Context, params repository.PartListParams) ([]InventoryRow, int64, error) {
	parts, total, err := s.partRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list parts: %w", err)
	}

	partIDs := make([]int64, 0, len(parts))
	for _, p := range parts {
		partIDs = append(partIDs, p.PartID)
	}
	quantities := s.Quantities(ctx, partIDs)
	prices := s.CurrentPrices(ctx, partIDs)

	rows := make([]InventoryRow, 0, len(parts))
	for _, p := range parts {
		quantity := quantities[p.PartID]
		price := prices[p.PartID]
		_, low := shortageOf(p.MinStockOrZero(), quantity)
		rows = append(rows, InventoryRow{
			Part:            p,
			CurrentQuantity: quantity,
			UnitPrice:       price,
			TotalValue:      price.Mul(decimal.NewFromInt(quantity)),
			LowStock:        low,
		})
	}
	return rows, total, nil
}

// Adjust 관리자 직접 수량 수정
func (s *InventoryService) Adjust(ctx context.Context, partID, quantity int64, updatedBy string) error {
	if quantity < 0 {
		return fmt.Errorf("재고 수량은 0 이상이어야 합니다")
	}
	if _, err := s.partRepo.FindByID(ctx, partID); err != nil {
		return ErrNotFound
	}
	if err := s.invRepo.SetQuantity(ctx, partID, quantity, updatedBy); err != nil {
		return fmt.Errorf("재고 수정 실패: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// invalidate 재고가 바뀔 때 집계 캐시를 비운다.
func (s *InventoryService) invalidate(ctx context.Context) {
	s.store.Delete(ctx, cacheKeyLowStock, cacheKeyAnalysis)
}
