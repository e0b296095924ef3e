package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inbound 입고 기록. 집계 경로에서는 읽기 전용 입력이다.
type Inbound struct {
	InboundID       int64           `json:"inbound_id" gorm:"primaryKey;autoIncrement"`
	PartID          int64           `json:"part_id" gorm:"not null;index"`
	SupplierID      int64           `json:"supplier_id" gorm:"index"`
	Quantity        int64           `json:"quantity" gorm:"not null"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"type:decimal(15,2);not null;default:0"`
	Currency        string          `json:"currency" gorm:"size:5;not null;default:₫"`
	InboundDate     time.Time       `json:"inbound_date" gorm:"type:date;not null;index"`
	ReferenceNumber string          `json:"reference_number" gorm:"size:30;index"`
	Notes           string          `json:"notes" gorm:"type:text"`
	CreatedBy       string          `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time       `json:"created_at"`

	Part     *Part     `json:"part,omitempty" gorm:"foreignKey:PartID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Inbound) TableName() string {
	return "inbound"
}

// Outbound 출고 기록
type Outbound struct {
	OutboundID      int64     `json:"outbound_id" gorm:"primaryKey;autoIncrement"`
	PartID          int64     `json:"part_id" gorm:"not null;index"`
	Quantity        int64     `json:"quantity" gorm:"not null"`
	OutboundDate    time.Time `json:"outbound_date" gorm:"type:date;not null;index"`
	Requester       string    `json:"requester" gorm:"size:100"`
	Department      string    `json:"department" gorm:"size:100"`
	Equipment       string    `json:"equipment" gorm:"size:100"`
	Purpose         string    `json:"purpose" gorm:"size:200"`
	ReferenceNumber string    `json:"reference_number" gorm:"size:30;index"`
	Notes           string    `json:"notes" gorm:"type:text"`
	CreatedBy       string    `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`

	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

func (Outbound) TableName() string {
	return "outbound"
}
