package repository

import (
	"context"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"gorm.io/gorm"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

// 이름 검색에 허용되는 컬럼. 화면의 표시 언어 선택과 일치한다.
var partNameColumns = map[string]string{
	"part_name":       "part_name",
	"korean_name":     "korean_name",
	"vietnamese_name": "vietnamese_name",
}

type PartListParams struct {
	Code      string
	Name      string
	NameField string // part_name | korean_name | vietnamese_name
	Category  string
	Status    string
	Page      int
	Size      int
}

func (r *PartRepository) List(ctx context.Context, params PartListParams) ([]entity.Part, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Part{})
	if params.Code != "" {
		query = query.Where("part_code ILIKE ?", "%"+params.Code+"%")
	}
	if params.Name != "" {
		col, ok := partNameColumns[params.NameField]
		if !ok {
			col = "part_name"
		}
		query = query.Where(col+" ILIKE ?", "%"+params.Name+"%")
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
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
	var parts []entity.Part
	err := query.Order("part_code").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&parts).Error
	return parts, total, err
}

// ListAll 집계용 전체 부품 조회. 필요한 컬럼만 가져온다.
func (r *PartRepository) ListAll(ctx context.Context) ([]entity.Part, error) {
	var parts []entity.Part
	err := r.db.WithContext(ctx).
		Select("part_id", "part_code", "part_name", "korean_name", "vietnamese_name", "category", "unit", "min_stock", "status").
		Order("part_code").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) FindByID(ctx context.Context, id int64) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).First(&part, "part_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// ExistsByCode 부품 코드 중복 확인. insert 전에 반드시 호출된다.
func (r *PartRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Part{}).
		Where("part_code = ?", code).Count(&count).Error
	return count > 0, err
}

// CreateWithInventory 부품과 초기 재고 행(수량 0)을 한 트랜잭션으로 만든다.
func (r *PartRepository) CreateWithInventory(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(part).Error; err != nil {
			return err
		}
		inv := &entity.Inventory{
			PartID:          part.PartID,
			CurrentQuantity: 0,
			UpdatedBy:       part.CreatedBy,
		}
		return tx.Create(inv).Error
	})
}

func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// Delete 부품과 재고 행을 함께 지운다. 입출고 이력은 남긴다.
func (r *PartRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Inventory{}, "part_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Part{}, "part_id = ?", id).Error
	})
}

// Categories 사용 중인 카테고리 목록. 빈 값은 제외하고 정렬해 돌려준다.
func (r *PartRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&entity.Part{}).
		Distinct("category").
		Where("category IS NOT NULL AND category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
