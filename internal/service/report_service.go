package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
)

var ErrInvalidDateRange = errors.New("invalid date format, use YYYY-MM-DD")

type ReportService interface {
	GenerateSalesReport(startDate, endDate string) (*SalesReport, error)
	GenerateInventoryReport() (*InventoryReport, error)
	GetReportHistory() ([]model.ReportLog, error)
}

type SalesReport struct {
	Sales []SalesReportRow `json:"sales"`
}

type SalesReportRow struct {
	Date        string     `json:"date"`
	OrderNumber string     `json:"order_number"`
	Items       []SoldItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Status      string     `json:"status"`
}

type SoldItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type InventoryReport struct {
	Inventory []InventoryReportRow `json:"inventory"`
}

type InventoryReportRow struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentStock float64 `json:"current_stock"`
	Unit         string  `json:"unit"`
	ReorderLevel float64 `json:"reorder_level"`
}

type reportService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	reportRepo    repository.ReportLogRepository
}

func NewReportService(orderRepo repository.OrderRepository, invRepo repository.InventoryRepository, reportRepo repository.ReportLogRepository) ReportService {
	return &reportService{
		orderRepo:     orderRepo,
		inventoryRepo: invRepo,
		reportRepo:    reportRepo,
	}
}

// GenerateSalesReport lists orders in [startDate, endDate], one row per
// order. Line names are the snapshots taken at order time.
func (s *reportService) GenerateSalesReport(startDate, endDate string) (*SalesReport, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end = end.AddDate(0, 0, 1) // inclusive end date

	orders, err := s.orderRepo.FindBetween(start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]SalesReportRow, 0, len(orders))
	for _, order := range orders {
		items := make([]SoldItem, 0, len(order.Lines))
		for _, line := range order.Lines {
			items = append(items, SoldItem{Name: line.Name, Quantity: line.Quantity})
		}
		rows = append(rows, SalesReportRow{
			Date:        order.CreatedAt.Format("2006-01-02"),
			OrderNumber: order.OrderNumber,
			Items:       items,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
		})
	}

	s.logReport(fmt.Sprintf("Sales report %s to %s", startDate, endDate), "sales")

	return &SalesReport{Sales: rows}, nil
}

func (s *reportService) GenerateInventoryReport() (*InventoryReport, error) {
	items, err := s.inventoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make([]InventoryReportRow, 0, len(items))
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		rows = append(rows, InventoryReportRow{
			Name:         item.Name,
			Category:     category,
			CurrentStock: item.CurrentStock,
			Unit:         item.Unit,
			ReorderLevel: item.ReorderLevel,
		})
	}

	s.logReport("Inventory report", "inventory")

	return &InventoryReport{Inventory: rows}, nil
}

func (s *reportService) GetReportHistory() ([]model.ReportLog, error) {
	return s.reportRepo.FindRecent(50)
}

func (s *reportService) logReport(title, reportType string) {
	entry := &model.ReportLog{Title: title, Type: reportType}
	if err := s.reportRepo.Create(entry); err != nil {
		// History is best-effort; the report itself already succeeded.
		log.Printf("Warning: failed to log report '%s': %v", title, err)
	}
}
