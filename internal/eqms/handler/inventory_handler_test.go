package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/bitfantasy/eqms/internal/eqms/testutil"
	"go.uber.org/zap"
)

func setupInventoryTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	store := cache.NewMemory()
	logger := zap.NewNop()

	invSvc := service.NewInventoryService(repos.Part, repos.Inventory, repos.Price, store, logger)
	h := NewInventoryHandler(invSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/inventory", h.List)
	api.GET("/inventory/low-stock", h.LowStock)
	api.GET("/inventory/analysis", h.Analysis)
	api.PUT("/inventory/:id", h.Adjust)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestLowStockEndpoint(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.AdminTestToken()

	testutil.SeedTestPart(t, env.DB, "MT-6001", "Short Part", "베어링", 10, 5)
	testutil.SeedTestPart(t, env.DB, "MT-6002", "Exact Part", "베어링", 3, 3)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/low-stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 low stock item, got %d", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["part_code"] != "MT-6001" || item["shortage"].(float64) != 5 {
		t.Fatalf("Unexpected low stock item: %v", item)
	}
}

func TestAnalysisSummaryMatchesLowStock(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.AdminTestToken()

	testutil.SeedTestPart(t, env.DB, "MT-6003", "Short Part", "베어링", 10, 0)
	testutil.SeedTestPart(t, env.DB, "MT-6004", "Full Part", "필터", 2, 9)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/analysis", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	if summary["total_parts"].(float64) != 2 {
		t.Fatalf("Expected 2 total parts, got %v", summary["total_parts"])
	}
	if summary["low_stock_parts"].(float64) != 1 {
		t.Fatalf("Expected 1 low stock part in summary, got %v", summary["low_stock_parts"])
	}
}

func TestAdjustRejectsNegative(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.AdminTestToken()

	part := testutil.SeedTestPart(t, env.DB, "MT-6005", "Adjustable", "기타", 1, 5)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/inventory/"+itoa(part.PartID), map[string]interface{}{
		"quantity": -3,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for negative quantity, got %d: %s", w.Code, w.Body.String())
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
