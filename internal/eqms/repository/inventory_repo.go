package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// QuantityByPartIDs 부품 ID 목록의 현재고 조회. 한 배치 분량만 받는다.
// 재고 행이 없는 부품은 결과에 없다.
func (r *InventoryRepository) QuantityByPartIDs(ctx context.Context, ids []int64) (map[int64]int64, error) {
	var rows []entity.Inventory
	err := r.db.WithContext(ctx).
		Select("part_id", "current_quantity").
		Where("part_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[int64]int64, len(rows))
	for _, row := range rows {
		result[row.PartID] = row.CurrentQuantity
	}
	return result, nil
}

func (r *InventoryRepository) FindByPartID(ctx context.Context, partID int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.db.WithContext(ctx).First(&inv, "part_id = ?", partID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AddQuantity 입고분 가산. 재고 행이 없으면 새로 만든다.
func (r *InventoryRepository) AddQuantity(ctx context.Context, partID, delta int64, updatedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv entity.Inventory
		err := tx.First(&inv, "part_id = ?", partID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			inv = entity.Inventory{
				PartID:          partID,
				CurrentQuantity: delta,
				UpdatedBy:       updatedBy,
			}
			return tx.Create(&inv).Error
		}
		if err != nil {
			return err
		}
		inv.CurrentQuantity += delta
		inv.UpdatedBy = updatedBy
		inv.UpdatedAt = time.Now()
		return tx.Save(&inv).Error
	})
}

// SubtractQuantity 출고분 차감. 0 아래로는 내려가지 않는다.
func (r *InventoryRepository) SubtractQuantity(ctx context.Context, partID, delta int64, updatedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv entity.Inventory
		if err := tx.First(&inv, "part_id = ?", partID).Error; err != nil {
			return err
		}
		newQty := inv.CurrentQuantity - delta
		if newQty < 0 {
			newQty = 0
		}
		inv.CurrentQuantity = newQty
		inv.UpdatedBy = updatedBy
		inv.UpdatedAt = time.Now()
		return tx.Save(&inv).Error
	})
}

// SetQuantity 관리자 직접 수정
func (r *InventoryRepository) SetQuantity(ctx context.Context, partID, quantity int64, updatedBy string) error {
	return r.db.WithContext(ctx).Model(&entity.Inventory{}).
		Where("part_id = ?", partID).
		Updates(map[string]interface{}{
			"current_quantity": quantity,
			"updated_by":       updatedBy,
			"updated_at":       time.Now(),
		}).Error
}
