package entity

import (
	"time"
)

// Supplier 공급업체
type Supplier struct {
	SupplierID    int64     `json:"supplier_id" gorm:"primaryKey;autoIncrement"`
	SupplierCode  string    `json:"supplier_code" gorm:"size:50;not null;uniqueIndex"`
	SupplierName  string    `json:"supplier_name" gorm:"size:200;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:100"`
	Phone         string    `json:"phone" gorm:"size:30"`
	Email         string    `json:"email" gorm:"size:100"`
	Address       string    `json:"address" gorm:"size:300"`
	CreatedBy     string    `json:"created_by" gorm:"size:64"`
	UpdatedBy     string    `json:"updated_by" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
