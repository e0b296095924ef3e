package entity

import (
	"time"
)

// PartStatus 부품 상태
const (
	PartStatusNew    = "NEW"
	PartStatusOld    = "OLD"
	PartStatusRepair = "REPAIR"
	PartStatusNG     = "NG"
)

// PartStatuses 상태별 집계에서 0으로 초기화되는 기본 상태 목록
var PartStatuses = []string{PartStatusNew, PartStatusOld, PartStatusRepair, PartStatusNG}

// CategoryOther 카테고리가 비어 있는 부품이 집계되는 버킷
const CategoryOther = "기타"

// Part 부품 마스터
type Part struct {
	PartID         int64     `json:"part_id" gorm:"primaryKey;autoIncrement"`
	PartCode       string    `json:"part_code" gorm:"size:50;not null;uniqueIndex"`
	PartName       string    `json:"part_name" gorm:"size:200;not null"`
	KoreanName     string    `json:"korean_name" gorm:"size:200"`
	VietnameseName string    `json:"vietnamese_name" gorm:"size:200"`
	Category       string    `json:"category" gorm:"size:50;index"`
	Unit           string    `json:"unit" gorm:"size:20;not null;default:EA"`
	Spec           string    `json:"spec" gorm:"size:200"`
	MinStock       *int64    `json:"min_stock"`
	Status         string    `json:"status" gorm:"size:10;not null;default:NEW"`
	Description    string    `json:"description" gorm:"type:text"`
	CreatedBy      string    `json:"created_by" gorm:"size:64"`
	UpdatedBy      string    `json:"updated_by" gorm:"size:64"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Part) TableName() string {
	return "parts"
}

// MinStockOrZero 최소 재고 기준. 미설정(null)은 0으로 본다.
func (p *Part) MinStockOrZero() int64 {
	if p.MinStock == nil {
		return 0
	}
	return *p.MinStock
}

// CategoryOrOther 집계용 카테고리. 비어 있으면 기타 버킷.
func (p *Part) CategoryOrOther() string {
	if p.Category == "" {
		return CategoryOther
	}
	return p.Category
}
