package entity

import (
	"time"
)

// Inventory 부품별 현재고. 부품당 한 행, 수량은 항상 0 이상.
type Inventory struct {
	InventoryID     int64     `json:"inventory_id" gorm:"primaryKey;autoIncrement"`
	PartID          int64     `json:"part_id" gorm:"not null;uniqueIndex"`
	CurrentQuantity int64     `json:"current_quantity" gorm:"not null;default:0"`
	UpdatedBy       string    `json:"updated_by" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

func (Inventory) TableName() string {
	return "inventory"
}
