package service

import (
	"testing"

	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/shopspring/decimal"
)

func intPtr(v int64) *int64 { return &v }

func testParts() []entity.Part {
	return []entity.Part{
		{PartID: 1, PartCode: "MT001", PartName: "Spindle Bearing", Category: "베어링", Unit: "EA", MinStock: intPtr(10), Status: entity.PartStatusNew},
		{PartID: 2, PartCode: "MT002", PartName: "Coolant Filter", Category: "필터", Unit: "EA", MinStock: intPtr(3), Status: entity.PartStatusNew},
		{PartID: 3, PartCode: "MT003", PartName: "Drive Belt", Category: "", Unit: "EA", MinStock: nil, Status: entity.PartStatusOld},
		{PartID: 4, PartCode: "MT004", PartName: "Limit Switch", Category: "베어링", Unit: "EA", MinStock: intPtr(5), Status: entity.PartStatusRepair},
	}
}

func TestEvaluateLowStockScenario(t *testing.T) {
	// 기준 10/수량 5 → 부족 5, 기준 3/수량 3 → 제외 (미만이 아님)
	parts := []entity.Part{
		{PartID: 1, PartCode: "P1", MinStock: intPtr(10)},
		{PartID: 2, PartCode: "P2", MinStock: intPtr(3)},
	}
	quantities := map[int64]int64{1: 5, 2: 3}

	items := evaluateLowStock(parts, quantities)
	if len(items) != 1 {
		t.Fatalf("expected 1 low stock item, got %d", len(items))
	}
	if items[0].PartID != 1 || items[0].Shortage != 5 {
		t.Fatalf("expected part 1 shortage 5, got part %d shortage %d", items[0].PartID, items[0].Shortage)
	}
}

func TestEvaluateLowStockSortedDescending(t *testing.T) {
	parts := []entity.Part{
		{PartID: 1, MinStock: intPtr(5)},
		{PartID: 2, MinStock: intPtr(100)},
		{PartID: 3, MinStock: intPtr(20)},
		{PartID: 4, MinStock: intPtr(1)},
	}
	quantities := map[int64]int64{1: 0, 2: 10, 3: 15, 4: 50}

	items := evaluateLowStock(parts, quantities)
	for i := 1; i < len(items); i++ {
		if items[i].Shortage > items[i-1].Shortage {
			t.Fatalf("shortage list not sorted descending at index %d", i)
		}
	}
	for _, item := range items {
		if item.CurrentQuantity >= item.MinStock {
			t.Fatalf("part %d has quantity >= min stock and must not be listed", item.PartID)
		}
		if item.Shortage != item.MinStock-item.CurrentQuantity {
			t.Fatalf("part %d shortage mismatch", item.PartID)
		}
	}
	// 수량 50 / 기준 1 부품은 목록에 없어야 한다.
	for _, item := range items {
		if item.PartID == 4 {
			t.Fatal("part 4 is not below threshold")
		}
	}
}

func TestEvaluateLowStockNilMinStock(t *testing.T) {
	// 기준 미설정은 0으로 본다. 수량 0도 0 미만이 아니므로 제외.
	parts := []entity.Part{{PartID: 1, MinStock: nil}}
	items := evaluateLowStock(parts, map[int64]int64{})
	if len(items) != 0 {
		t.Fatalf("nil min stock must behave as zero, got %d items", len(items))
	}
}

func TestEvaluateLowStockMissingQuantityDefaultsToZero(t *testing.T) {
	// 배치 조회에서 빠진 부품은 수량 0으로 본다.
	parts := []entity.Part{{PartID: 9, MinStock: intPtr(7)}}
	items := evaluateLowStock(parts, map[int64]int64{})
	if len(items) != 1 || items[0].Shortage != 7 {
		t.Fatalf("expected shortage 7 for missing quantity, got %+v", items)
	}
}

func TestAggregateInventoryCounts(t *testing.T) {
	parts := testParts()
	quantities := map[int64]int64{1: 5, 2: 10, 3: 2, 4: 0}
	prices := map[int64]decimal.Decimal{
		1: decimal.NewFromInt(1000),
		2: decimal.NewFromInt(250),
	}

	analysis := aggregateInventory(parts, quantities, prices)

	countSum := 0
	valueSum := decimal.Zero
	for _, c := range analysis.Categories {
		countSum += c.Count
		valueSum = valueSum.Add(c.TotalValue)
	}
	if countSum != analysis.Summary.TotalParts {
		t.Fatalf("category counts sum %d != total parts %d", countSum, analysis.Summary.TotalParts)
	}
	if !valueSum.Equal(analysis.Summary.TotalValue) {
		t.Fatalf("category values sum %s != total value %s", valueSum, analysis.Summary.TotalValue)
	}
	if analysis.Summary.TotalQuantity != 17 {
		t.Fatalf("expected total quantity 17, got %d", analysis.Summary.TotalQuantity)
	}
	// 1000*5 + 250*10 = 7500
	if !analysis.Summary.TotalValue.Equal(decimal.NewFromInt(7500)) {
		t.Fatalf("expected total value 7500, got %s", analysis.Summary.TotalValue)
	}
}

func TestAggregateInventoryOtherBucket(t *testing.T) {
	parts := testParts()
	analysis := aggregateInventory(parts, map[int64]int64{}, map[int64]decimal.Decimal{})

	var other *CategoryStat
	for i := range analysis.Categories {
		if analysis.Categories[i].Category == entity.CategoryOther {
			other = &analysis.Categories[i]
		}
	}
	if other == nil {
		t.Fatal("empty category must be grouped under 기타")
	}
	if other.Count != 1 {
		t.Fatalf("expected 1 part in 기타, got %d", other.Count)
	}
}

func TestAggregateInventoryStatusZeroInit(t *testing.T) {
	analysis := aggregateInventory(testParts(), map[int64]int64{}, map[int64]decimal.Decimal{})

	got := make(map[string]int, len(analysis.Statuses))
	for _, s := range analysis.Statuses {
		got[s.Status] = s.Count
	}
	for _, status := range entity.PartStatuses {
		if _, ok := got[status]; !ok {
			t.Fatalf("status %s missing from aggregation", status)
		}
	}
	if got[entity.PartStatusNG] != 0 {
		t.Fatalf("expected 0 NG parts, got %d", got[entity.PartStatusNG])
	}
	if got[entity.PartStatusNew] != 2 {
		t.Fatalf("expected 2 NEW parts, got %d", got[entity.PartStatusNew])
	}
}

func TestLowStockCountMatchesEvaluator(t *testing.T) {
	// 요약의 부족 건수는 부족 목록과 같은 판정을 공유한다.
	parts := testParts()
	quantities := map[int64]int64{1: 5, 2: 10, 3: 2, 4: 0}

	analysis := aggregateInventory(parts, quantities, map[int64]decimal.Decimal{})
	items := evaluateLowStock(parts, quantities)
	if analysis.Summary.LowStockParts != len(items) {
		t.Fatalf("summary low stock %d != evaluator %d", analysis.Summary.LowStockParts, len(items))
	}
}
