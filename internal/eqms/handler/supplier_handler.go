package handler

import (
	"errors"

	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// SupplierHandler 공급업체 핸들러
type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// List GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.SupplierListParams{
		Code: c.Query("code"),
		Name: c.Query("name"),
		Page: page,
		Size: size,
	}

	suppliers, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "공급업체 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      suppliers,
		"pagination": NewPagination(page, size, total),
	})
}

// Get GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "공급업체 ID가 올바르지 않습니다")
		return
	}

	supplier, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "공급업체를 찾을 수 없습니다")
		return
	}
	Success(c, supplier)
}

// Create POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	supplier, err := h.svc.Create(c.Request.Context(), &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			Conflict(c, "이미 사용 중인 공급업체 코드입니다: "+req.SupplierCode)
			return
		}
		InternalError(c, "공급업체 등록 실패: "+err.Error())
		return
	}
	Created(c, supplier)
}

// Update PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "공급업체 ID가 올바르지 않습니다")
		return
	}

	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	supplier, err := h.svc.Update(c.Request.Context(), id, &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "공급업체를 찾을 수 없습니다")
			return
		}
		InternalError(c, "공급업체 수정 실패: "+err.Error())
		return
	}
	Success(c, supplier)
}

// Delete DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "공급업체 ID가 올바르지 않습니다")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "공급업체를 찾을 수 없습니다")
			return
		}
		InternalError(c, "공급업체 삭제 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
