package handler

import (
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 엑셀 내보내기 핸들러
type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func writeExcel(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// Inventory GET /exports/inventory
func (h *ExportHandler) Inventory(c *gin.Context) {
	f, filename, err := h.svc.ExportInventory(c.Request.Context())
	if err != nil {
		InternalError(c, "재고 내보내기 실패: "+err.Error())
		return
	}
	writeExcel(c, f, filename)
}

// Inbound GET /exports/inbound
func (h *ExportHandler) Inbound(c *gin.Context) {
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

	f, filename, err := h.svc.ExportInbound(c.Request.Context(), repository.InboundListParams{
		PartID:     queryInt64(c, "part_id"),
		SupplierID: queryInt64(c, "supplier_id"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		InternalError(c, "입고 내보내기 실패: "+err.Error())
		return
	}
	writeExcel(c, f, filename)
}

// Outbound GET /exports/outbound
func (h *ExportHandler) Outbound(c *gin.Context) {
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

	f, filename, err := h.svc.ExportOutbound(c.Request.Context(), repository.OutboundListParams{
		PartID:     queryInt64(c, "part_id"),
		Department: c.Query("department"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		InternalError(c, "출고 내보내기 실패: "+err.Error())
		return
	}
	writeExcel(c, f, filename)
}
