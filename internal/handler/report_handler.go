package handler

import (
	"fmt"
	"time"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetSalesReport returns summary, daily breakdown and top products
// GET /api/v1/reports/sales?range=7d
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	start, end := service.PeriodRange(c.Query("range", "7d"), time.Now())

	report, err := h.service.GetSalesReport(c.Context(), start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

// ExportSales streams the report as a spreadsheet or PDF
// GET /api/v1/reports/sales/export?format=xlsx&range=7d
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	start, end := service.PeriodRange(c.Query("range", "7d"), time.Now())
	stamp := time.Now().Format("20060102")

	switch c.Query("format", "xlsx") {
	case "xlsx":
		data, err := h.service.ExportXLSX(c.Context(), start, end)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to export report"})
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sales-report-%s.xlsx"`, stamp))
		return c.Send(data)
	case "pdf":
		data, err := h.service.ExportPDF(c.Context(), start, end)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to export report"})
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sales-report-%s.pdf"`, stamp))
		return c.Send(data)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "format must be xlsx or pdf"})
	}
}
