package repository

import (
	"context"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// CurrentPriceByPartIDs 부품 ID 목록의 현재 단가 조회. 한 배치 분량만 받는다.
// is_current 이면서 0보다 큰 단가만 평가에 쓰인다.
func (r *PriceRepository) CurrentPriceByPartIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	var rows []entity.PartPrice
	err := r.db.WithContext(ctx).
		Select("part_id", "unit_price").
		Where("part_id IN ? AND is_current = true AND unit_price > 0", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[int64]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.PartID] = row.UnitPrice
	}
	return result, nil
}

// ListByPart 부품의 단가 이력. 최신 적용일 순.
func (r *PriceRepository) ListByPart(ctx context.Context, partID int64) ([]entity.PartPrice, error) {
	var prices []entity.PartPrice
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("part_id = ?", partID).
		Order("effective_date DESC, price_id DESC").
		Find(&prices).Error
	return prices, err
}

// CurrentByPartAndSupplier 부품/공급업체의 현재 단가 행
func (r *PriceRepository) CurrentByPartAndSupplier(ctx context.Context, partID, supplierID int64) (*entity.PartPrice, error) {
	var price entity.PartPrice
	err := r.db.WithContext(ctx).
		First(&price, "part_id = ? AND supplier_id = ? AND is_current = true", partID, supplierID).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// SetCurrent 기존 현재 단가를 이력으로 내리고 새 행을 현재 단가로 넣는다.
func (r *PriceRepository) SetCurrent(ctx context.Context, price *entity.PartPrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.PartPrice{}).
			Where("part_id = ? AND is_current = true", price.PartID).
			Update("is_current", false).Error; err != nil {
			return err
		}
		price.IsCurrent = true
		return tx.Create(price).Error
	})
}
