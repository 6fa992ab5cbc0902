package service

import (
	"testing"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableMenuVerdicts(t *testing.T) {
	milk := &model.InventoryItem{Name: "Milk", Unit: "ml", CurrentStock: 100}
	milk.ID = uuid.New()

	preMade := &model.Product{Name: "Banana Bread", Price: 80, StockQuantity: 3, IsAvailable: true}
	switchedOff := &model.Product{Name: "Seasonal Special", Price: 150, StockQuantity: 5, IsAvailable: false}
	covered := &model.Product{
		Name: "Latte", Price: 120, IsAvailable: true,
		Recipe: []model.RecipeItem{{InventoryItemID: milk.ID, QuantityRequired: 50, Unit: "ml"}},
	}
	outOfMilk := &model.Product{
		Name: "Giant Latte", Price: 200, IsAvailable: true,
		Recipe: []model.RecipeItem{{InventoryItemID: milk.ID, QuantityRequired: 500, Unit: "ml"}},
	}
	orphanRecipe := &model.Product{
		Name: "Old Blend", Price: 90, IsAvailable: true,
		Recipe: []model.RecipeItem{{InventoryItemID: uuid.New(), QuantityRequired: 10, Unit: "g"}},
	}
	untracked := &model.Product{Name: "Bottled Water", Price: 25, IsAvailable: true}

	productRepo := newFakeProductRepo(preMade, switchedOff, covered, outOfMilk, orphanRecipe, untracked)
	inventoryRepo := newFakeInventoryRepo(milk)
	svc := NewCatalogService(productRepo, inventoryRepo, nil)

	menu, err := svc.GetAvailableMenu()
	require.NoError(t, err)

	byName := map[string]MenuItemView{}
	for _, v := range menu {
		byName[v.Name] = v
	}
	require.Len(t, byName, 6)

	assert.True(t, byName["Banana Bread"].IsAvailable)
	assert.True(t, byName["Latte"].IsAvailable)
	assert.True(t, byName["Bottled Water"].IsAvailable, "untracked products are always orderable")

	assert.False(t, byName["Seasonal Special"].IsAvailable)
	assert.Equal(t, "Temporarily unavailable", byName["Seasonal Special"].UnavailableReason)

	assert.False(t, byName["Giant Latte"].IsAvailable)
	assert.Equal(t, "Out of Milk", byName["Giant Latte"].UnavailableReason)

	assert.False(t, byName["Old Blend"].IsAvailable)
	assert.Equal(t, "Ingredient no longer stocked", byName["Old Blend"].UnavailableReason)
}

func TestUpdateIngredientsValidatesReferences(t *testing.T) {
	milk := &model.InventoryItem{Name: "Milk", Unit: "ml", CurrentStock: 100}
	milk.ID = uuid.New()
	latte := &model.Product{Name: "Latte", Price: 120, IsAvailable: true}

	productRepo := newFakeProductRepo(latte)
	inventoryRepo := newFakeInventoryRepo(milk)
	svc := NewCatalogService(productRepo, inventoryRepo, nil)

	// Unknown ingredient is rejected.
	err := svc.UpdateIngredients(latte.ID, []model.RecipeItem{
		{InventoryItemID: uuid.New(), QuantityRequired: 50, Unit: "ml"},
	})
	assert.ErrorIs(t, err, ErrInventoryItemNotFound)

	// Non-positive quantities are rejected.
	err = svc.UpdateIngredients(latte.ID, []model.RecipeItem{
		{InventoryItemID: milk.ID, QuantityRequired: 0, Unit: "ml"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than 0")

	// Valid recipe replaces the old one.
	err = svc.UpdateIngredients(latte.ID, []model.RecipeItem{
		{InventoryItemID: milk.ID, QuantityRequired: 150, Unit: "ml"},
	})
	require.NoError(t, err)
	require.Len(t, latte.Recipe, 1)
	assert.Equal(t, milk.ID, latte.Recipe[0].InventoryItemID)
}

func TestUpdateIngredientsUnknownProduct(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), newFakeInventoryRepo(), nil)

	err := svc.UpdateIngredients(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
