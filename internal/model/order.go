package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order statuses. The vocabulary is fixed; transitions are permissive.
const (
	StatusNew       = "New"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusCompleted = "Completed"
	StatusServed    = "Served"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
)

var validStatuses = map[string]bool{
	StatusNew:       true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCompleted: true,
	StatusServed:    true,
	StatusPending:   true,
	StatusCancelled: true,
}

// IsValidStatus reports whether s belongs to the fixed status vocabulary.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// IsDoneStatus reports whether s counts as completed for revenue
// accounting. Served and Completed are equivalent terminal states.
func IsDoneStatus(s string) bool {
	return s == StatusServed || s == StatusCompleted
}

// Walk-in sentinel identity used when an order has no authenticated
// customer.
const (
	WalkInCustomerID = "walk-in"
	WalkInEmail      = "walkin@cafe.local"
	WalkInName       = "Walk-in Customer"
)

type Order struct {
	BaseModel
	OrderNumber   string `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_number"`
	CustomerID    string `gorm:"type:varchar(64);index" json:"customer_id"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`

	Lines []OrderLine `json:"lines"`

	TotalAmount     float64 `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	DeliveryAddress string  `gorm:"type:text" json:"delivery_address,omitempty"`
	DeliveryFee     float64 `gorm:"type:numeric(12,2);default:0" json:"delivery_fee"`
	PaymentMethod   string  `gorm:"type:varchar(20)" json:"payment_method"`

	Status      string `gorm:"type:varchar(20);default:'New'" json:"status"`
	IsCompleted bool   `gorm:"default:false" json:"is_completed"`

	PlacedByStaff bool   `gorm:"default:false" json:"placed_by_staff"`
	StaffID       string `gorm:"type:varchar(64)" json:"staff_id,omitempty"`
}

// OrderLine snapshots name and price at order time; later catalog edits
// do not affect persisted orders.
type OrderLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Price     float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"type:varchar(20)" json:"size,omitempty"`
	Mood      string    `gorm:"type:varchar(20)" json:"mood,omitempty"`
	Sugar     string    `gorm:"type:varchar(20)" json:"sugar,omitempty"`
}

// NewOrderNumber builds the human-readable order number: "ORD" plus a
// UTC timestamp at millisecond precision. Unique under single-process
// load; not a global identifier.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%d", now.UTC().UnixMilli())
}
