package handler

import (
	"errors"

	"go-cafe-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetSalesReport builds a sales report over a date range
// GET /api/v1/reports/sales?start_date=2026-08-01&end_date=2026-08-31
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		return c.Status(400).JSON(fiber.Map{"error": "start_date and end_date are required"})
	}

	report, err := h.service.GenerateSalesReport(startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

// GetInventoryReport snapshots current stock levels
// GET /api/v1/reports/inventory
func (h *ReportHandler) GetInventoryReport(c *fiber.Ctx) error {
	report, err := h.service.GenerateInventoryReport()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

// GetHistory lists recently generated reports
// GET /api/v1/reports/history
func (h *ReportHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.service.GetReportHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(history)
}
