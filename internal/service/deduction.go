package service

import (
	"math"

	"go-cafe-api/internal/model"

	"github.com/google/uuid"
)

type deductionTier int

const (
	// tierUntracked: no pre-made stock and no recipe. The product is
	// fulfilled without any deduction. Escape hatch for items without
	// inventory tracking, not a bug.
	tierUntracked deductionTier = iota
	tierPreMade
	tierRecipe
)

type ingredientNeed struct {
	itemID uuid.UUID
	needed float64
	unit   string
}

type deductionPlan struct {
	tier        deductionTier
	preMadeQty  int
	ingredients []ingredientNeed
}

// planDeduction decides which stock tier a cart line consumes.
//
// Policy: pre-made only, no fallback. A product with positive pre-made
// stock is served exclusively from that stock; if it cannot cover the
// requested quantity the whole order is rejected rather than drawing
// the remainder from ingredients. Only a product with zero pre-made
// stock consumes its recipe.
func planDeduction(p *model.Product, qty int) deductionPlan {
	if p.StockQuantity > 0 {
		return deductionPlan{tier: tierPreMade, preMadeQty: qty}
	}
	if p.HasRecipe() {
		needs := make([]ingredientNeed, 0, len(p.Recipe))
		for _, ri := range p.Recipe {
			needed := ri.QuantityRequired * float64(qty)
			if model.IsDiscreteUnit(ri.Unit) {
				// Fractional pieces cannot be consumed.
				needed = math.Ceil(needed)
			}
			needs = append(needs, ingredientNeed{
				itemID: ri.InventoryItemID,
				needed: needed,
				unit:   ri.Unit,
			})
		}
		return deductionPlan{tier: tierRecipe, ingredients: needs}
	}
	return deductionPlan{tier: tierUntracked}
}
