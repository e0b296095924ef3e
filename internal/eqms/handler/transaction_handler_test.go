package handler

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/bitfantasy/eqms/internal/eqms/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func setupTransactionTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	store := cache.NewMemory()
	logger := zap.NewNop()

	txSvc := service.NewTransactionService(repos.Transaction, repos.Part, repos.Inventory, repos.Price, store, logger)
	h := NewTransactionHandler(txSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/inbound", h.ListInbound)
	api.POST("/inbound", h.CreateInbound)
	api.GET("/outbound", h.ListOutbound)
	api.POST("/outbound", h.CreateOutbound)
	api.GET("/reports/inout", h.InOutReport)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

var inboundRefPattern = regexp.MustCompile(`^IN-\d{8}-\d{3}$`)

func TestInboundIncrementsInventory(t *testing.T) {
	env := setupTransactionTest(t)
	token := testutil.AdminTestToken()

	part := testutil.SeedTestPart(t, env.DB, "MT-5001", "Drive Belt", "벨트", 5, 3)
	supplier := testutil.SeedTestSupplier(t, env.DB, "SUP-001", "Vina Parts Co.")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/inbound", map[string]interface{}{
		"part_id":     part.PartID,
		"supplier_id": supplier.SupplierID,
		"quantity":    10,
		"unit_price":  "15000",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	ref := data["reference_number"].(string)
	if !inboundRefPattern.MatchString(ref) {
		t.Fatalf("Reference number %q does not match IN-YYYYMMDD-NNN", ref)
	}

	var inv entity.Inventory
	if err := env.DB.First(&inv, "part_id = ?", part.PartID).Error; err != nil {
		t.Fatalf("Inventory row missing: %v", err)
	}
	if inv.CurrentQuantity != 13 {
		t.Fatalf("Expected quantity 13 after inbound, got %d", inv.CurrentQuantity)
	}

	// 입고 단가는 현재 단가로 올라간다.
	var price entity.PartPrice
	if err := env.DB.First(&price, "part_id = ? AND is_current = true", part.PartID).Error; err != nil {
		t.Fatalf("Current price row missing: %v", err)
	}
	if !price.UnitPrice.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("Expected current price 15000, got %s", price.UnitPrice)
	}
}

func TestInboundReferenceSequenceIncrements(t *testing.T) {
	env := setupTransactionTest(t)
	token := testutil.AdminTestToken()

	part := testutil.SeedTestPart(t, env.DB, "MT-5002", "Limit Switch", "스위치", 5, 0)

	var refs []string
	for i := 0; i < 2; i++ {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/inbound", map[string]interface{}{
			"part_id":  part.PartID,
			"quantity": 1,
		}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		data := testutil.ParseResponse(w)["data"].(map[string]interface{})
		refs = append(refs, data["reference_number"].(string))
	}
	if refs[0] == refs[1] {
		t.Fatalf("Reference numbers must be unique, both were %s", refs[0])
	}
}

func TestOutboundClampsInventoryAtZero(t *testing.T) {
	env := setupTransactionTest(t)
	token := testutil.AdminTestToken()

	part := testutil.SeedTestPart(t, env.DB, "MT-5003", "Coolant Filter", "필터", 5, 3)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/outbound", map[string]interface{}{
		"part_id":    part.PartID,
		"quantity":   10,
		"requester":  "김기사",
		"department": "보전팀",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var inv entity.Inventory
	if err := env.DB.First(&inv, "part_id = ?", part.PartID).Error; err != nil {
		t.Fatalf("Inventory row missing: %v", err)
	}
	if inv.CurrentQuantity != 0 {
		t.Fatalf("Expected quantity clamped at 0, got %d", inv.CurrentQuantity)
	}
}

func TestOutboundRejectsUnknownPart(t *testing.T) {
	env := setupTransactionTest(t)
	token := testutil.AdminTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/outbound", map[string]interface{}{
		"part_id":  99999,
		"quantity": 1,
	}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown part, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInOutReportCountsMovedPartsOnly(t *testing.T) {
	env := setupTransactionTest(t)
	token := testutil.AdminTestToken()

	moved := testutil.SeedTestPart(t, env.DB, "MT-5004", "Moved Part", "기타", 5, 0)
	testutil.SeedTestPart(t, env.DB, "MT-5005", "Idle Part", "기타", 5, 0)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/inbound", map[string]interface{}{
		"part_id":  moved.PartID,
		"quantity": 4,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/reports/inout", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected only moved parts in report, got %d rows", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["part_code"] != "MT-5004" || row["inbound_qty"].(float64) != 4 {
		t.Fatalf("Unexpected report row: %v", row)
	}
}
