package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name              string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price             float64 `gorm:"type:numeric(12,2);not null" json:"price" validate:"gte=0"`
	StockQuantity     int     `gorm:"default:0" json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int     `gorm:"default:5" json:"low_stock_threshold"`
	Category          string  `gorm:"type:varchar(100)" json:"category"`
	IsAvailable       bool    `gorm:"default:true" json:"is_available"`
	ImageURL          string  `gorm:"type:text" json:"image_url,omitempty"`

	// Customization axes shown to the customer. Display-only; never
	// part of the stock math.
	HasSizes       bool           `gorm:"default:false" json:"has_sizes"`
	Sizes          pq.StringArray `gorm:"type:text[]" json:"sizes,omitempty"`
	HasMoods       bool           `gorm:"default:false" json:"has_moods"`
	Moods          pq.StringArray `gorm:"type:text[]" json:"moods,omitempty"`
	HasSugarLevels bool           `gorm:"default:false" json:"has_sugar_levels"`
	SugarLevels    pq.Int64Array  `gorm:"type:bigint[]" json:"sugar_levels,omitempty"`

	// Relasi
	Recipe []RecipeItem `json:"recipe,omitempty"`
}

// RecipeItem describes how much of one inventory ingredient a single
// sold unit of the product consumes.
type RecipeItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	InventoryItemID  uuid.UUID `gorm:"type:uuid;not null" json:"inventory_item_id" validate:"uuid_required"`
	QuantityRequired float64   `gorm:"type:numeric(12,3);not null" json:"quantity_required" validate:"required,gt=0"`
	Unit             string    `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
}

// IsLowStock reports whether the pre-made stock has fallen to or below
// the product's threshold. Recomputed on read, never persisted.
func (p *Product) IsLowStock() bool {
	return p.IsAvailable && p.StockQuantity <= p.LowStockThreshold
}

// HasRecipe reports whether the product consumes tracked ingredients.
func (p *Product) HasRecipe() bool {
	return len(p.Recipe) > 0
}
