package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-pos-backend/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

type SalesReport struct {
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	Summary     repository.SalesSummary `json:"summary"`
	TopProducts []repository.TopProduct `json:"top_products"`
	Daily       []repository.SalesByDay `json:"daily"`
}

type ReportService interface {
	GetSalesReport(ctx context.Context, startDate, endDate time.Time) (*SalesReport, error)
	ExportXLSX(ctx context.Context, startDate, endDate time.Time) ([]byte, error)
	ExportPDF(ctx context.Context, startDate, endDate time.Time) ([]byte, error)
}

type reportService struct {
	txRepo repository.TransactionRepository
}

func NewReportService(txRepo repository.TransactionRepository) ReportService {
	return &reportService{txRepo: txRepo}
}

// PeriodRange resolves a range keyword ("today", "7d", "1m", "3m", "6m",
// "12m") to a concrete [start, end] window ending at now. Unknown keywords
// fall back to 7 days.
func PeriodRange(rng string, now time.Time) (time.Time, time.Time) {
	var start time.Time
	switch rng {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "7d":
		start = now.AddDate(0, 0, -7)
	case "1m":
		start = now.AddDate(0, -1, 0)
	case "3m":
		start = now.AddDate(0, -3, 0)
	case "6m":
		start = now.AddDate(0, -6, 0)
	case "12m":
		start = now.AddDate(0, -12, 0)
	default:
		start = now.AddDate(0, 0, -7)
	}
	return start, now
}

func (s *reportService) GetSalesReport(ctx context.Context, startDate, endDate time.Time) (*SalesReport, error) {
	summary, err := s.txRepo.GetSalesSummary(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	top, err := s.txRepo.GetTopProducts(ctx, startDate, endDate, 10)
	if err != nil {
		return nil, err
	}

	daily, err := s.txRepo.GetSalesByDay(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		Summary:     *summary,
		TopProducts: top,
		Daily:       daily,
	}, nil
}

func (s *reportService) ExportXLSX(ctx context.Context, startDate, endDate time.Time) ([]byte, error) {
	report, err := s.GetSalesReport(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales Report"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Sales Report")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s - %s", report.StartDate, report.EndDate))

	f.SetCellValue(sheet, "A4", "Total Revenue")
	f.SetCellValue(sheet, "B4", report.Summary.TotalRevenue)
	f.SetCellValue(sheet, "A5", "Transactions")
	f.SetCellValue(sheet, "B5", report.Summary.TotalTransactions)
	f.SetCellValue(sheet, "A6", "Items Sold")
	f.SetCellValue(sheet, "B6", report.Summary.TotalItemsSold)
	f.SetCellValue(sheet, "A7", "Total Discount")
	f.SetCellValue(sheet, "B7", report.Summary.TotalDiscount)
	f.SetCellValue(sheet, "A8", "Total Tax")
	f.SetCellValue(sheet, "B8", report.Summary.TotalTax)

	// Daily breakdown
	row := 10
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Date")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Revenue")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Transactions")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Items Sold")
	for _, day := range report.Daily {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), day.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), day.Revenue)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), day.Transactions)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), day.ItemsSold)
	}

	// Top products
	row += 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Product")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Quantity Sold")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Revenue")
	for _, p := range report.TopProducts {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ProductName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.QuantitySold)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Revenue)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExportPDF(ctx context.Context, startDate, endDate time.Time) ([]byte, error) {
	report, err := s.GetSalesReport(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", report.StartDate, report.EndDate))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	summaryRows := [][2]string{
		{"Total Revenue", fmt.Sprintf("%d", report.Summary.TotalRevenue)},
		{"Transactions", fmt.Sprintf("%d", report.Summary.TotalTransactions)},
		{"Items Sold", fmt.Sprintf("%d", report.Summary.TotalItemsSold)},
		{"Total Discount", fmt.Sprintf("%d", report.Summary.TotalDiscount)},
		{"Total Tax", fmt.Sprintf("%d", report.Summary.TotalTax)},
	}
	for _, r := range summaryRows {
		pdf.Cell(60, 6, r[0])
		pdf.Cell(60, 6, r[1])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Top Products")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(90, 6, "Product")
	pdf.Cell(40, 6, "Qty Sold")
	pdf.Cell(40, 6, "Revenue")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range report.TopProducts {
		pdf.Cell(90, 6, p.ProductName)
		pdf.Cell(40, 6, fmt.Sprintf("%d", p.QuantitySold))
		pdf.Cell(40, 6, fmt.Sprintf("%d", p.Revenue))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
