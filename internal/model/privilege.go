package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "menu:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Menu Item"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Menu management
	{Code: "menu:view", Name: "View Menu"},
	{Code: "menu:create", Name: "Create Menu Item"},
	{Code: "menu:update", Name: "Update Menu Item"},
	{Code: "menu:delete", Name: "Delete Menu Item"},
	// Inventory management
	{Code: "inventory:view", Name: "View Inventory"},
	{Code: "inventory:create", Name: "Create Inventory Item"},
	{Code: "inventory:update", Name: "Update Inventory Item"},
	// Order management
	{Code: "order:view", Name: "View Orders"},
	{Code: "order:create", Name: "Place Order"},
	{Code: "order:update_status", Name: "Update Order Status"},
	// Supplier management
	{Code: "supplier:view", Name: "View Supplier"},
	{Code: "supplier:create", Name: "Create Supplier"},
	{Code: "supplier:update", Name: "Update Supplier"},
	// Notifications
	{Code: "notification:view", Name: "View Notifications"},
	// Reporting
	{Code: "report:view", Name: "View Reports"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// StaffPrivilegeCodes are the privileges granted to the STAFF role.
var StaffPrivilegeCodes = []string{
	"menu:view",
	"inventory:view",
	"order:view",
	"order:create",
	"order:update_status",
	"notification:view",
	"dashboard:view",
}

// CustomerPrivilegeCodes are the privileges granted to the CUSTOMER role.
var CustomerPrivilegeCodes = []string{
	"menu:view",
	"order:create",
	"notification:view",
}
