package model

import "time"

type BarcodeStatus string

const (
	BarcodeAvailable BarcodeStatus = "available"
	BarcodeUsed      BarcodeStatus = "used"
	BarcodeVoid      BarcodeStatus = "void"
)

// Barcode is one row of the pre-generated barcode pool. Rows are created in
// bulk by the generator and transition available->used exactly once, inside
// the product-creation transaction. Rows of deactivated products become void.
type Barcode struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	BarcodeID int64         `gorm:"uniqueIndex;not null" json:"barcode_id"` // allocation order
	Code      string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Status    BarcodeStatus `gorm:"type:varchar(10);not null;default:'available';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
