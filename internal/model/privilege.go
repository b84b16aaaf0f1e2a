package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "product:restock", Name: "Restock Product"},
	// Checkout / transactions
	{Code: "transaction:view", Name: "View Transaction"},
	{Code: "transaction:create", Name: "Create Transaction"},
	// Barcode pool
	{Code: "barcode:view", Name: "View Barcode Pool"},
	{Code: "barcode:generate", Name: "Generate Barcodes"},
	// Reporting
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "report:view", Name: "View Reports"},
	{Code: "report:export", Name: "Export Reports"},
}

// CashierPrivilegeCodes are the privileges granted to the CASHIER role.
var CashierPrivilegeCodes = []string{
	"product:view",
	"transaction:view",
	"transaction:create",
	"barcode:view",
}
