package service

import (
	"go-cafe-api/internal/repository"
)

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

// DashboardStats is the admin homepage overview. Low-stock alerts count
// both tiers: finished products at their threshold and ingredients at
// their reorder level.
type DashboardStats struct {
	TotalOrders         int64   `json:"total_orders"`
	PendingOrders       int64   `json:"pending_orders"`
	TotalRevenue        float64 `json:"total_revenue"`
	LowStockAlerts      int64   `json:"low_stock_alerts"`
	UnreadNotifications int64   `json:"unread_notifications"`
}

type dashboardService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	notifRepo     repository.NotificationRepository
}

func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, invRepo repository.InventoryRepository, notifRepo repository.NotificationRepository) DashboardService {
	return &dashboardService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: invRepo,
		notifRepo:     notifRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalOrders, err = s.orderRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orderRepo.SumRevenue(); err != nil {
		return nil, err
	}

	productLow, err := s.productRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	ingredientLow, err := s.inventoryRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	stats.LowStockAlerts = productLow + ingredientLow

	if stats.UnreadNotifications, err = s.notifRepo.CountUnread(); err != nil {
		return nil, err
	}

	return stats, nil
}
