package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService 엑셀 내보내기. MinIO가 설정되면 사본을 보관한다.
type ExportService struct {
	inventorySvc *InventoryService
	txRepo       *repository.TransactionRepository
	minioClient  *minio.Client
	bucket       string
	logger       *zap.Logger
}

func NewExportService(inventorySvc *InventoryService, txRepo *repository.TransactionRepository, minioClient *minio.Client, bucket string, logger *zap.Logger) *ExportService {
	return &ExportService{
		inventorySvc: inventorySvc,
		txRepo:       txRepo,
		minioClient:  minioClient,
		bucket:       bucket,
		logger:       logger,
	}
}

// ExportFilename 내보내기 파일명. 부품_export_20260830_143005.xlsx 형식.
func ExportFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.xlsx", name, now.Format("20060102_150405"))
}

var inventoryExportHeaders = []string{
	"부품코드", "부품명", "한글명", "카테고리", "단위",
	"현재고", "최소재고", "단가", "재고금액", "상태", "부족여부",
}

// ExportInventory 재고 현황을 xlsx로 만든다.
func (s *ExportService) ExportInventory(ctx context.Context) (*excelize.File, string, error) {
	rows, _, err := s.inventorySvc.List(ctx, repository.PartListParams{Size: 10000})
	if err != nil {
		return nil, "", fmt.Errorf("list inventory: %w", err)
	}

	f := excelize.NewFile()
	sheet := "재고현황"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range inventoryExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for idx, item := range rows {
		row := idx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.PartCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.PartName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.KoreanName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.CategoryOrOther())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.CurrentQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.MinStockOrZero())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.UnitPrice.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.TotalValue.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.Status)
		low := ""
		if item.LowStock {
			low = "부족"
		}
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), low)
	}

	filename := ExportFilename("inventory", time.Now())
	s.archive(ctx, f, filename)
	return f, filename, nil
}

var inboundExportHeaders = []string{
	"참조번호", "입고일", "부품코드", "부품명", "공급업체", "수량", "단가", "통화", "비고",
}

// ExportInbound 기간별 입고 이력을 xlsx로 만든다.
func (s *ExportService) ExportInbound(ctx context.Context, params repository.InboundListParams) (*excelize.File, string, error) {
	params.Page = 1
	params.Size = 10000
	rows, _, err := s.txRepo.ListInbound(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("list inbound: %w", err)
	}

	f := excelize.NewFile()
	sheet := "입고이력"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range inboundExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for idx, item := range rows {
		row := idx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ReferenceNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.InboundDate.Format("2006-01-02"))
		if item.Part != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Part.PartCode)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Part.PartName)
		}
		if item.Supplier != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Supplier.SupplierName)
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.UnitPrice.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.Notes)
	}

	filename := ExportFilename("inbound", time.Now())
	s.archive(ctx, f, filename)
	return f, filename, nil
}

var outboundExportHeaders = []string{
	"참조번호", "출고일", "부품코드", "부품명", "수량", "요청자", "부서", "설비", "용도", "비고",
}

// ExportOutbound 기간별 출고 이력을 xlsx로 만든다.
func (s *ExportService) ExportOutbound(ctx context.Context, params repository.OutboundListParams) (*excelize.File, string, error) {
	params.Page = 1
	params.Size = 10000
	rows, _, err := s.txRepo.ListOutbound(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("list outbound: %w", err)
	}

	f := excelize.NewFile()
	sheet := "출고이력"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range outboundExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for idx, item := range rows {
		row := idx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ReferenceNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.OutboundDate.Format("2006-01-02"))
		if item.Part != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Part.PartCode)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Part.PartName)
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Requester)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Department)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Equipment)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.Purpose)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.Notes)
	}

	filename := ExportFilename("outbound", time.Now())
	s.archive(ctx, f, filename)
	return f, filename, nil
}

// archive MinIO에 사본 보관. 실패해도 다운로드는 막지 않는다.
func (s *ExportService) archive(ctx context.Context, f *excelize.File, filename string) {
	if s.minioClient == nil {
		return
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Warn("엑셀 버퍼 생성 실패", zap.String("filename", filename), zap.Error(err))
		return
	}

	objectName := fmt.Sprintf("exports/%s/%s", time.Now().Format("2006/01/02"), filename)
	_, err := s.minioClient.PutObject(ctx, s.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: excelContentType,
	})
	if err != nil {
		s.logger.Warn("엑셀 보관 실패", zap.String("object", objectName), zap.Error(err))
	}
}
