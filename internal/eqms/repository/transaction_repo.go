package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type InboundListParams struct {
	PartID     int64
	SupplierID int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Size       int
}

func (r *TransactionRepository) ListInbound(ctx context.Context, params InboundListParams) ([]entity.Inbound, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Inbound{})
	if params.PartID != 0 {
		query = query.Where("part_id = ?", params.PartID)
	}
	if params.SupplierID != 0 {
		query = query.Where("supplier_id = ?", params.SupplierID)
	}
	if params.DateFrom != nil {
		query = query.Where("inbound_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("inbound_date <= ?", params.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var rows []entity.Inbound
	err := query.Preload("Part").Preload("Supplier").
		Order("inbound_date DESC, inbound_id DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&rows).Error
	return rows, total, err
}

type OutboundListParams struct {
	PartID     int64
	Department string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Size       int
}

func (r *TransactionRepository) ListOutbound(ctx context.Context, params OutboundListParams) ([]entity.Outbound, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Outbound{})
	if params.PartID != 0 {
		query = query.Where("part_id = ?", params.PartID)
	}
	if params.Department != "" {
		query = query.Where("department ILIKE ?", "%"+params.Department+"%")
	}
	if params.DateFrom != nil {
		query = query.Where("outbound_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("outbound_date <= ?", params.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var rows []entity.Outbound
	err := query.Preload("Part").
		Order("outbound_date DESC, outbound_id DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&rows).Error
	return rows, total, err
}

func (r *TransactionRepository) CreateInbound(ctx context.Context, row *entity.Inbound) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *TransactionRepository) CreateOutbound(ctx context.Context, row *entity.Outbound) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// NextReference 당일 참조 번호 채번. IN-20260830-001 형식으로,
// 당일 최댓값에서 일련번호를 하나 올린다.
func (r *TransactionRepository) NextReference(ctx context.Context, table, prefix string, date time.Time) (string, error) {
	dayPrefix := fmt.Sprintf("%s-%s", prefix, date.Format("20060102"))

	var latest string
	err := r.db.WithContext(ctx).Table(table).
		Select("reference_number").
		Where("reference_number LIKE ?", dayPrefix+"-%").
		Order("reference_number DESC").
		Limit(1).
		Scan(&latest).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if latest != "" {
		if idx := strings.LastIndex(latest, "-"); idx >= 0 {
			if n, err := strconv.Atoi(latest[idx+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%03d", dayPrefix, seq), nil
}

// InOutTotal 기간별 부품 단위 입출고 합계
type InOutTotal struct {
	PartID      int64  `json:"part_id"`
	PartCode    string `json:"part_code"`
	PartName    string `json:"part_name"`
	InboundQty  int64  `json:"inbound_qty"`
	OutboundQty int64  `json:"outbound_qty"`
}

// InOutTotals 입출고 보고서 집계. 기간 내 움직임이 있는 부품만 나온다.
func (r *TransactionRepository) InOutTotals(ctx context.Context, from, to time.Time) ([]InOutTotal, error) {
	var rows []InOutTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.part_id,
		       p.part_code,
		       p.part_name,
		       COALESCE(i.qty, 0) AS inbound_qty,
		       COALESCE(o.qty, 0) AS outbound_qty
		FROM parts p
		LEFT JOIN (
			SELECT part_id, SUM(quantity) AS qty
			FROM inbound
			WHERE inbound_date BETWEEN ? AND ?
			GROUP BY part_id
		) i ON i.part_id = p.part_id
		LEFT JOIN (
			SELECT part_id, SUM(quantity) AS qty
			FROM outbound
			WHERE outbound_date BETWEEN ? AND ?
			GROUP BY part_id
		) o ON o.part_id = p.part_id
		WHERE COALESCE(i.qty, 0) > 0 OR COALESCE(o.qty, 0) > 0
		ORDER BY p.part_code
	`, from, to, from, to).Scan(&rows).Error
	return rows, err
}
