package handler

import (
	"errors"

	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// UserHandler 계정 관리 핸들러. 시스템 관리자 전용.
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, "계정 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"items": users})
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "계정 ID가 올바르지 않습니다")
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "계정을 찾을 수 없습니다")
		return
	}
	Success(c, user)
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			Conflict(c, "이미 사용 중인 아이디입니다: "+req.Username)
			return
		}
		BadRequest(c, "계정 생성 실패: "+err.Error())
		return
	}
	Created(c, user)
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "계정 ID가 올바르지 않습니다")
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "계정을 찾을 수 없습니다")
			return
		}
		BadRequest(c, "계정 수정 실패: "+err.Error())
		return
	}
	Success(c, user)
}

// Delete DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		BadRequest(c, "계정 ID가 올바르지 않습니다")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "계정을 찾을 수 없습니다")
			return
		}
		InternalError(c, "계정 삭제 실패: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
