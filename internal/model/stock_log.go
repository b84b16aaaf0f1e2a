package model

import (
	"time"

	"github.com/google/uuid"
)

// StockLog reasons
const (
	StockReasonInitial    = "initial"
	StockReasonSale       = "sale"
	StockReasonRestock    = "restock"
	StockReasonAdjustment = "adjustment"
)

// StockLog is an append-only audit row for a stock quantity change. Writes
// are best-effort: a failed log never fails the stock mutation itself.
type StockLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    string    `gorm:"type:varchar(255)" json:"user_id"`

	Change      int    `gorm:"not null" json:"change"` // signed delta
	StockBefore int    `gorm:"not null" json:"stock_before"`
	StockAfter  int    `gorm:"not null" json:"stock_after"`
	Reason      string `gorm:"type:varchar(20);not null" json:"reason"`
	Note        string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}
