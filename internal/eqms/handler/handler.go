package handler

import (
	"strconv"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// Handlers 핸들러 집합
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Part        *PartHandler
	Inventory   *InventoryHandler
	Supplier    *SupplierHandler
	Transaction *TransactionHandler
	Export      *ExportHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Part:        NewPartHandler(svc.Part),
		Inventory:   NewInventoryHandler(svc.Inventory),
		Supplier:    NewSupplierHandler(svc.Supplier),
		Transaction: NewTransactionHandler(svc.Transaction),
		Export:      NewExportHandler(svc.Export),
	}
}

// Response 공통 응답 구조
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination 페이지 정보
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, size int, total int64) *Pagination {
	totalPages := int(total) / size
	if int(total)%size > 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Success 성공 응답
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 생성 성공 응답
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 오류 응답
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 요청 파라미터 오류
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Conflict 고유 코드 중복
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// Unauthorized 인증 실패
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// NotFound 대상 없음
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 서버 오류
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 컨텍스트의 사용자 ID
func GetUserID(c *gin.Context) int64 {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(int64); ok {
		return id
	}
	return 0
}

// GetUsername 컨텍스트의 사용자 이름. 감사 필드에 쓴다.
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}

// GetPagination 요청의 페이지 파라미터
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// ParamID 경로 파라미터 ID
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryDate 날짜 쿼리 파라미터. YYYY-MM-DD.
func QueryDate(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
