package service

import (
	"testing"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlanDeductionPreMadeStock(t *testing.T) {
	p := &model.Product{Name: "Latte", StockQuantity: 5}

	plan := planDeduction(p, 3)

	assert.Equal(t, tierPreMade, plan.tier)
	assert.Equal(t, 3, plan.preMadeQty)
	assert.Empty(t, plan.ingredients)
}

// A product with any positive pre-made stock is served exclusively from
// that stock. Even when the stock cannot cover the quantity and a
// recipe exists, the plan never falls back to ingredients.
func TestPlanDeductionNoFallbackToRecipe(t *testing.T) {
	p := &model.Product{
		Name:          "Latte",
		StockQuantity: 2,
		Recipe: []model.RecipeItem{
			{InventoryItemID: uuid.New(), QuantityRequired: 30, Unit: "ml"},
		},
	}

	plan := planDeduction(p, 3)

	assert.Equal(t, tierPreMade, plan.tier)
	assert.Equal(t, 3, plan.preMadeQty)
	assert.Empty(t, plan.ingredients)
}

func TestPlanDeductionRecipeScalesWithQuantity(t *testing.T) {
	milkID := uuid.New()
	beansID := uuid.New()
	p := &model.Product{
		Name:          "Cappuccino",
		StockQuantity: 0,
		Recipe: []model.RecipeItem{
			{InventoryItemID: milkID, QuantityRequired: 150, Unit: "ml"},
			{InventoryItemID: beansID, QuantityRequired: 18, Unit: "g"},
		},
	}

	plan := planDeduction(p, 2)

	assert.Equal(t, tierRecipe, plan.tier)
	assert.Len(t, plan.ingredients, 2)
	assert.Equal(t, milkID, plan.ingredients[0].itemID)
	assert.Equal(t, 300.0, plan.ingredients[0].needed)
	assert.Equal(t, beansID, plan.ingredients[1].itemID)
	assert.Equal(t, 36.0, plan.ingredients[1].needed)
}

func TestPlanDeductionDiscreteUnitsRoundUp(t *testing.T) {
	cupID := uuid.New()
	p := &model.Product{
		Name:          "Halo-Halo",
		StockQuantity: 0,
		Recipe: []model.RecipeItem{
			{InventoryItemID: cupID, QuantityRequired: 0.5, Unit: "pcs"},
		},
	}

	plan := planDeduction(p, 3)

	assert.Equal(t, tierRecipe, plan.tier)
	// 0.5 pcs * 3 = 1.5, rounded up to whole pieces
	assert.Equal(t, 2.0, plan.ingredients[0].needed)
}

func TestPlanDeductionUntracked(t *testing.T) {
	p := &model.Product{Name: "Bottled Water", StockQuantity: 0}

	plan := planDeduction(p, 10)

	assert.Equal(t, tierUntracked, plan.tier)
	assert.Zero(t, plan.preMadeQty)
	assert.Empty(t, plan.ingredients)
}
