package service

import (
	"testing"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendLowStockAlert(t *testing.T) {
	beans := &model.InventoryItem{Name: "Coffee Beans", Unit: "g", CurrentStock: 120, ReorderLevel: 500}
	beans.ID = uuid.New()

	invRepo := newFakeInventoryRepo(beans)
	notifRepo := &fakeNotificationRepo{}
	svc := NewInventoryService(invRepo, notifRepo, nil, nil)

	require.NoError(t, svc.SendLowStockAlert("coffee beans")) // name match is case-insensitive

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, model.NotifWarning, n.Type)
	assert.Equal(t, model.RoleAdmin, n.TargetRole)
	assert.Contains(t, n.Message, "Coffee Beans")
	assert.Contains(t, n.Message, "120")
}

func TestSendLowStockAlertUnknownItem(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), &fakeNotificationRepo{}, nil, nil)

	err := svc.SendLowStockAlert("Unicorn Dust")
	assert.ErrorIs(t, err, ErrInventoryItemNotFound)
}

func TestGetItemByIDUnknown(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), &fakeNotificationRepo{}, nil, nil)

	_, err := svc.GetItemByID(uuid.New())
	assert.ErrorIs(t, err, ErrInventoryItemNotFound)
}
