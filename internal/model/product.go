package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Barcode     string `gorm:"type:varchar(32);uniqueIndex;not null" json:"barcode"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Unit        string `gorm:"type:varchar(20)" json:"unit"`
	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`

	// Prices in minor currency units
	CostPrice    int64 `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice int64 `gorm:"not null;default:0" json:"selling_price" validate:"required,gt=0"`

	// Stock never goes negative; enforced inside the checkout transaction,
	// not by a DB constraint.
	Stock         int  `gorm:"default:0" json:"stock"`
	MinStockLevel int  `gorm:"default:5" json:"min_stock_level"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}

// IsLowStock reports whether the product has dropped to or below its minimum level.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStockLevel
}
