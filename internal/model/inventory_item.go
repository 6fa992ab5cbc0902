package model

// InventoryItem is a tracked ingredient. CurrentStock is only ever
// reduced through guarded conditional updates; a deduction that would
// drive it negative is rejected, not clamped.
type InventoryItem struct {
	BaseModel
	Name         string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string  `gorm:"type:varchar(100)" json:"category"`
	Unit         string  `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
	CurrentStock float64 `gorm:"type:numeric(12,3);default:0" json:"current_stock" validate:"gte=0"`
	ReorderLevel float64 `gorm:"type:numeric(12,3);default:10" json:"reorder_level" validate:"gte=0"`
	AutoReorder  bool    `gorm:"default:false" json:"auto_reorder"`
}

// IsLow reports whether the item has reached its reorder level.
func (i *InventoryItem) IsLow() bool {
	return i.CurrentStock <= i.ReorderLevel
}

// discrete units cannot be consumed fractionally; deductions in these
// units are rounded up to whole pieces.
var discreteUnits = map[string]bool{
	"pcs":    true,
	"pc":     true,
	"piece":  true,
	"pieces": true,
}

// IsDiscreteUnit reports whether the unit counts whole pieces.
func IsDiscreteUnit(unit string) bool {
	return discreteUnits[unit]
}
