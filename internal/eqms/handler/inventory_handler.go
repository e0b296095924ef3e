package handler

import (
	"errors"

	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// InventoryHandler 재고 핸들러
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.PartListParams{
		Code:      c.Query("code"),
		Name:      c.Query("name"),
		NameField: c.Query("name_field"),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		Page:      page,
		Size:      size,
	}

	rows, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "재고 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      rows,
		"pagination": NewPagination(page, size, total),
	})
}

// LowStock GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items := h.svc.LowStock(c.Request.Context())
	Success(c, gin.H{
		"items": items,
		"count": len(items),
	})
}

// Analysis GET /inventory/analysis
func (h *InventoryHandler) Analysis(c *gin.Context) {
	analysis, err := h.svc.Analysis(c.Request.Context())
	if err != nil {
		InternalError(c, "재고 분석 실패: "+err.Error())
		return
	}
	Success(c, analysis)
}

// AdjustRequest 재고 직접 수정 요청
type AdjustRequest struct {
	Quantity int64 `json:"quantity" binding:"min=0"`
}

// Adjust PUT /inventory/:id
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	if err := h.svc.Adjust(c.Request.Context(), id, req.Quantity, GetUsername(c)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{"part_id": id, "quantity": req.Quantity})
}
