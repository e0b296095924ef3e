package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
)

// TransactionHandler 입출고 핸들러
type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func queryInt64(c *gin.Context, name string) int64 {
	if v := c.Query(name); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// ListInbound GET /inbound
func (h *TransactionHandler) ListInbound(c *gin.Context) {
	dateFrom, err := QueryDate(c, "date_from")
	if err != nil {
		BadRequest(c, "date_from 형식이 올바르지 않습니다")
		return
	}
	dateTo, err := QueryDate(c, "date_to")
	if err != nil {
		BadRequest(c, "date_to 형식이 올바르지 않습니다")
		return
	}

	page, size := GetPagination(c)
	params := repository.InboundListParams{
		PartID:     queryInt64(c, "part_id"),
		SupplierID: queryInt64(c, "supplier_id"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Page:       page,
		Size:       size,
	}

	rows, total, err := h.svc.ListInbound(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "입고 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      rows,
		"pagination": NewPagination(page, size, total),
	})
}

// CreateInbound POST /inbound
func (h *TransactionHandler) CreateInbound(c *gin.Context) {
	var req service.CreateInboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	row, err := h.svc.CreateInbound(c.Request.Context(), &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		BadRequest(c, "입고 등록 실패: "+err.Error())
		return
	}
	Created(c, row)
}

// ListOutbound GET /outbound
func (h *TransactionHandler) ListOutbound(c *gin.Context) {
	dateFrom, err := QueryDate(c, "date_from")
	if err != nil {
		BadRequest(c, "date_from 형식이 올바르지 않습니다")
		return
	}
	dateTo, err := QueryDate(c, "date_to")
	if err != nil {
		BadRequest(c, "date_to 형식이 올바르지 않습니다")
		return
	}

	page, size := GetPagination(c)
	params := repository.OutboundListParams{
		PartID:     queryInt64(c, "part_id"),
		Department: c.Query("department"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Page:       page,
		Size:       size,
	}

	rows, total, err := h.svc.ListOutbound(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "출고 목록 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      rows,
		"pagination": NewPagination(page, size, total),
	})
}

// CreateOutbound POST /outbound
func (h *TransactionHandler) CreateOutbound(c *gin.Context) {
	var req service.CreateOutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	row, err := h.svc.CreateOutbound(c.Request.Context(), &req, GetUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "부품을 찾을 수 없습니다")
			return
		}
		BadRequest(c, "출고 등록 실패: "+err.Error())
		return
	}
	Created(c, row)
}

// InOutReport GET /reports/inout?date_from=&date_to=
func (h *TransactionHandler) InOutReport(c *gin.Context) {
	dateFrom, err := QueryDate(c, "date_from")
	if err != nil {
		BadRequest(c, "date_from 형식이 올바르지 않습니다")
		return
	}
	dateTo, err := QueryDate(c, "date_to")
	if err != nil {
		BadRequest(c, "date_to 형식이 올바르지 않습니다")
		return
	}

	// 기본 최근 30일
	now := time.Now()
	to := now
	from := now.AddDate(0, 0, -30)
	if dateFrom != nil {
		from = *dateFrom
	}
	if dateTo != nil {
		to = *dateTo
	}

	totals, err := h.svc.InOutReport(c.Request.Context(), from, to)
	if err != nil {
		BadRequest(c, "입출고 보고서 조회 실패: "+err.Error())
		return
	}
	Success(c, gin.H{
		"date_from": from.Format("2006-01-02"),
		"date_to":   to.Format("2006-01-02"),
		"items":     totals,
	})
}
