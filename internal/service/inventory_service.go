package service

import (
	"errors"
	"fmt"
	"log"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
	"go-cafe-api/internal/ws"
	"go-cafe-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateItem(req *model.InventoryItem, userID string) error
	UpdateItem(id uuid.UUID, req *model.InventoryItem, userID string) (*model.InventoryItem, error)
	GetAllItems() ([]model.InventoryItem, error)
	GetItemByID(id uuid.UUID) (*model.InventoryItem, error)
	GetLowStockItems() ([]model.InventoryItem, error)
	SendLowStockAlert(itemName string) error
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	notifRepo     repository.NotificationRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInventoryService(invRepo repository.InventoryRepository, notifRepo repository.NotificationRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		inventoryRepo: invRepo,
		notifRepo:     notifRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *inventoryService) CreateItem(req *model.InventoryItem, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.inventoryRepo.Create(req); err != nil {
		return err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("inventory_created", map[string]interface{}{
			"id":            req.ID,
			"name":          req.Name,
			"current_stock": req.CurrentStock,
		})
	}

	return nil
}

// UpdateItem rewrites the item fields under a row lock so a manual
// admin edit cannot race a concurrent order deduction.
func (s *inventoryService) UpdateItem(id uuid.UUID, req *model.InventoryItem, userID string) (*model.InventoryItem, error) {
	var updated *model.InventoryItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.InventoryItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return ErrInventoryItemNotFound
		}

		oldStock := existing.CurrentStock

		existing.Name = req.Name
		existing.Category = req.Category
		existing.Unit = req.Unit
		existing.CurrentStock = req.CurrentStock
		existing.ReorderLevel = req.ReorderLevel
		existing.AutoReorder = req.AutoReorder
		existing.UpdatedBy = userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing

		if s.wsHub != nil {
			go s.wsHub.BroadcastEvent("inventory_updated", map[string]interface{}{
				"id":        existing.ID,
				"name":      existing.Name,
				"old_stock": oldStock,
				"new_stock": existing.CurrentStock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *inventoryService) GetAllItems() ([]model.InventoryItem, error) {
	return s.inventoryRepo.FindAll()
}

func (s *inventoryService) GetItemByID(id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrInventoryItemNotFound
	}
	return item, nil
}

func (s *inventoryService) GetLowStockItems() ([]model.InventoryItem, error) {
	return s.inventoryRepo.FindLowStock()
}

// SendLowStockAlert creates an admin-facing warning for an ingredient a
// staff member flagged by name.
func (s *inventoryService) SendLowStockAlert(itemName string) error {
	item, err := s.inventoryRepo.FindByName(itemName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryItemNotFound
		}
		return err
	}

	notification := &model.Notification{
		Message:    fmt.Sprintf("Inventory item '%s' is running low (%s %s left, reorder at %s)", item.Name, formatQty(item.CurrentStock), item.Unit, formatQty(item.ReorderLevel)),
		Type:       model.NotifWarning,
		Category:   "inventory",
		TargetRole: model.RoleAdmin,
		RelatedID:  item.ID.String(),
	}
	if err := s.notifRepo.Create(notification); err != nil {
		return err
	}

	log.Printf("Low stock alert sent for '%s'", item.Name)

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("low_stock_alert", map[string]interface{}{
			"id":            item.ID,
			"name":          item.Name,
			"current_stock": item.CurrentStock,
			"reorder_level": item.ReorderLevel,
		})
	}

	return nil
}
