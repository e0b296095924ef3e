package handler

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/bitfantasy/eqms/internal/eqms/testutil"
	"go.uber.org/zap"
)

func setupPartTest(t *testing.T) (*testutil.TestEnv, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	store := cache.NewMemory()
	logger := zap.NewNop()

	partSvc := service.NewPartService(repos.Part, repos.Price, store, logger)
	h := NewPartHandler(partSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/parts", h.List)
	api.GET("/parts/:id", h.Get)
	api.POST("/parts", h.Create)
	api.PUT("/parts/:id", h.Update)
	api.DELETE("/parts/:id", h.Delete)
	api.GET("/part-categories", h.Categories)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, repos
}

func TestPartCreateRejectsDuplicateCode(t *testing.T) {
	env, _ := setupPartTest(t)
	token := testutil.AdminTestToken()

	body := map[string]interface{}{
		"part_code": "MT-1001",
		"part_name": "Spindle Bearing",
		"category":  "베어링",
		"min_stock": 10,
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/parts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// 같은 코드 재등록은 insert 없이 거절
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/parts", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for duplicate code, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Model(&entity.Part{}).Where("part_code = ?", "MT-1001").Count(&count)
	if count != 1 {
		t.Fatalf("Expected exactly 1 part row, got %d", count)
	}
}

func TestPartCreateMakesInventoryRow(t *testing.T) {
	env, _ := setupPartTest(t)
	token := testutil.AdminTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/parts", map[string]interface{}{
		"part_code": "MT-2001",
		"part_name": "Coolant Filter",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	partID := int64(data["part_id"].(float64))

	var inv entity.Inventory
	if err := env.DB.First(&inv, "part_id = ?", partID).Error; err != nil {
		t.Fatalf("Expected inventory row for new part: %v", err)
	}
	if inv.CurrentQuantity != 0 {
		t.Fatalf("Expected initial quantity 0, got %d", inv.CurrentQuantity)
	}
}

func TestPartListFilterByCategory(t *testing.T) {
	env, _ := setupPartTest(t)
	token := testutil.AdminTestToken()

	testutil.SeedTestPart(t, env.DB, "MT-3001", "Bearing A", "베어링", 5, 10)
	testutil.SeedTestPart(t, env.DB, "MT-3002", "Bearing B", "베어링", 5, 10)
	testutil.SeedTestPart(t, env.DB, "MT-3003", "Filter A", "필터", 5, 10)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/parts?category=베어링", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 parts in category, got %d", len(items))
	}
}

func TestPartCategoriesExcludeEmpty(t *testing.T) {
	env, _ := setupPartTest(t)
	token := testutil.AdminTestToken()

	testutil.SeedTestPart(t, env.DB, "MT-4001", "Bearing", "베어링", 5, 0)
	testutil.SeedTestPart(t, env.DB, "MT-4002", "Unsorted", "", 5, 0)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/part-categories", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 || items[0] != "베어링" {
		t.Fatalf("Expected only non-empty categories, got %v", items)
	}
}

func TestPartRequiresAuth(t *testing.T) {
	env, _ := setupPartTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/parts", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
