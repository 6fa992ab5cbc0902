package model

// DeliveryZone maps a city or area name to its delivery fee. Addresses
// are matched by case-insensitive substring.
type DeliveryZone struct {
	BaseModel
	CityOrArea string  `gorm:"type:varchar(255);not null" json:"city_or_area" validate:"required"`
	Fee        float64 `gorm:"type:numeric(12,2);not null" json:"fee" validate:"gte=0"`
	IsActive   bool    `gorm:"default:true" json:"is_active"`
}
