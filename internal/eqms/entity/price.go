package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency 기본 통화
const DefaultCurrency = "₫"

// PartPrice 부품 단가 이력. 부품/공급업체별로 여러 행이 남고
// is_current 행만 평가에 쓰인다.
type PartPrice struct {
	PriceID       int64           `json:"price_id" gorm:"primaryKey;autoIncrement"`
	PartID        int64           `json:"part_id" gorm:"not null;index"`
	SupplierID    int64           `json:"supplier_id" gorm:"index"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:decimal(15,2);not null;default:0"`
	Currency      string          `json:"currency" gorm:"size:5;not null;default:₫"`
	EffectiveDate time.Time       `json:"effective_date"`
	IsCurrent     bool            `json:"is_current" gorm:"not null;default:false;index"`
	CreatedBy     string          `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time       `json:"created_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (PartPrice) TableName() string {
	return "part_prices"
}
