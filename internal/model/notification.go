package model

// Notification types.
const (
	NotifInfo    = "info"
	NotifWarning = "warning"
	NotifSuccess = "success"
)

// Notification is an append-only system message. Notifications are
// marked read, never deleted.
type Notification struct {
	BaseModel
	Message    string `gorm:"type:text;not null" json:"message" validate:"required"`
	Type       string `gorm:"type:varchar(20);default:'info'" json:"type"`
	Category   string `gorm:"type:varchar(50)" json:"category"`
	TargetRole string `gorm:"type:varchar(20);default:'STAFF';index" json:"target_role"`
	CustomerID string `gorm:"type:varchar(64);index" json:"customer_id,omitempty"`
	RelatedID  string `gorm:"type:varchar(64)" json:"related_id,omitempty"`
	IsRead     bool   `gorm:"default:false" json:"is_read"`
}
