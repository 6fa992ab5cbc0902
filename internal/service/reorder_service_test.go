package service

import (
	"testing"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndReorderReplenishesDueItems(t *testing.T) {
	due := &model.InventoryItem{Name: "Cups", Unit: "pcs", CurrentStock: 5, ReorderLevel: 10, AutoReorder: true}
	due.ID = uuid.New()
	manual := &model.InventoryItem{Name: "Sugar", Unit: "g", CurrentStock: 5, ReorderLevel: 10, AutoReorder: false}
	manual.ID = uuid.New()
	healthy := &model.InventoryItem{Name: "Milk", Unit: "ml", CurrentStock: 500, ReorderLevel: 100, AutoReorder: true}
	healthy.ID = uuid.New()

	invRepo := newFakeInventoryRepo(due, manual, healthy)
	notifRepo := &fakeNotificationRepo{}
	svc := NewReorderService(invRepo, notifRepo)

	require.NoError(t, svc.CheckAndReorder())

	assert.Equal(t, 15.0, due.CurrentStock)
	assert.Equal(t, 5.0, manual.CurrentStock, "manual items are never auto-reordered")
	assert.Equal(t, 500.0, healthy.CurrentStock, "items above reorder level are untouched")

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, model.RoleAdmin, n.TargetRole)
	assert.Equal(t, "reorder", n.Category)
	assert.Contains(t, n.Message, "Cups")
}

func TestCheckAndReorderIsIdempotentOncePastLevel(t *testing.T) {
	item := &model.InventoryItem{Name: "Cups", Unit: "pcs", CurrentStock: 10, ReorderLevel: 10, AutoReorder: true}
	item.ID = uuid.New()

	invRepo := newFakeInventoryRepo(item)
	notifRepo := &fakeNotificationRepo{}
	svc := NewReorderService(invRepo, notifRepo)

	require.NoError(t, svc.CheckAndReorder())
	assert.Equal(t, 20.0, item.CurrentStock)

	// Above the level now, so the next sweep leaves it alone.
	require.NoError(t, svc.CheckAndReorder())
	assert.Equal(t, 20.0, item.CurrentStock)
	assert.Len(t, notifRepo.created, 1)
}
