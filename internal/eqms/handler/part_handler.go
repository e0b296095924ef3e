package handler

import (
	"errors"

	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// PartHandler 부품 핸들러
type PartHandler struct {
	svc *service.PartService
}

func NewPartHandler(svc *service.PartService) *PartHandler {
	return &PartHandler{svc: svc}
}

// List GET /parts
func (h *PartHandler) List(c *gin.Context) {
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

	parts, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "부품 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      parts,
		"pagination": NewPagination(page, size, total),
	})
}

// Get GET /parts/:id
func (h *PartHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	part, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "부품을 찾을 수 없습니다")
		return
	}
	Success(c, part)
}

// Create POST /parts
func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	part, err := h.svc.Create(c.Request.Context(), &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			Conflict(c, "이미 사용 중인 부품 코드입니다: "+req.PartCode)
			return
		}
		InternalError(c, "부품 등록 실패: "+err.Error())
		return
	}
	Created(c, part)
}

// Update PUT /parts/:id
func (h *PartHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	part, err := h.svc.Update(c.Request.Context(), id, &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		InternalError(c, "부품 수정 실패: "+err.Error())
		return
	}
	Success(c, part)
}

// Delete DELETE /parts/:id
func (h *PartHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		InternalError(c, "부품 삭제 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Categories GET /part-categories
func (h *PartHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		InternalError(c, "카테고리 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"items": categories})
}

// Prices GET /parts/:id/prices
func (h *PartHandler) Prices(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	prices, err := h.svc.Prices(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		InternalError(c, "단가 이력 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"items": prices})
}

// AddPrice POST /parts/:id/prices
func (h *PartHandler) AddPrice(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "부품 ID가 올바르지 않습니다")
		return
	}

	var req service.AddPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}
	if !req.UnitPrice.IsPositive() {
		BadRequest(c, "단가는 0보다 커야 합니다")
		return
	}

	price, err := h.svc.AddPrice(c.Request.Context(), id, &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		InternalError(c, "단가 등록 실패: "+err.Error())
		return
	}
	Created(c, price)
}
