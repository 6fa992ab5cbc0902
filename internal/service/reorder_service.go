package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-cafe-api/internal/model"
	"go-cafe-api/internal/repository"
)

// reorderAmount is the fixed replenishment added to an auto-reorder
// item that has reached its reorder level.
const reorderAmount = 10

type ReorderService interface {
	CheckAndReorder() error
	Run(ctx context.Context, interval time.Duration)
}

type reorderService struct {
	inventoryRepo repository.InventoryRepository
	notifRepo     repository.NotificationRepository
}

func NewReorderService(invRepo repository.InventoryRepository, notifRepo repository.NotificationRepository) ReorderService {
	return &reorderService{
		inventoryRepo: invRepo,
		notifRepo:     notifRepo,
	}
}

// CheckAndReorder replenishes every auto-reorder item at or below its
// reorder level. One failed item does not stop the sweep.
func (s *reorderService) CheckAndReorder() error {
	items, err := s.inventoryRepo.FindAutoReorderDue()
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.inventoryRepo.Replenish(item.ID, reorderAmount); err != nil {
			log.Printf("Warning: auto-reorder of '%s' failed: %v", item.Name, err)
			continue
		}

		newStock := item.CurrentStock + reorderAmount
		log.Printf("Auto-reordered: %s +%d %s (reorder level %s, new stock %s)",
			item.Name, reorderAmount, item.Unit, formatQty(item.ReorderLevel), formatQty(newStock))

		notification := &model.Notification{
			Message:    fmt.Sprintf("Auto-reordered %d %s of '%s' (stock was %s)", reorderAmount, item.Unit, item.Name, formatQty(item.CurrentStock)),
			Type:       model.NotifInfo,
			Category:   "reorder",
			TargetRole: model.RoleAdmin,
			RelatedID:  item.ID.String(),
		}
		if err := s.notifRepo.Create(notification); err != nil {
			log.Printf("Warning: failed to create reorder notification for '%s': %v", item.Name, err)
		}
	}

	return nil
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. Independent of request traffic.
func (s *reorderService) Run(ctx context.Context, interval time.Duration) {
	log.Printf("Reorder sweep started (interval %s)", interval)

	if err := s.CheckAndReorder(); err != nil {
		log.Printf("Warning: reorder sweep failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reorder sweep stopped")
			return
		case <-ticker.C:
			if err := s.CheckAndReorder(); err != nil {
				log.Printf("Warning: reorder sweep failed: %v", err)
			}
		}
	}
}
