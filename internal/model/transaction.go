package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentQRIS     PaymentMethod = "QRIS"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is one completed checkout. Immutable after creation except for
// status changes.
type Transaction struct {
	BaseModel
	TransactionNumber string `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_number"`

	Subtotal       int64 `gorm:"not null" json:"subtotal"`
	TaxAmount      int64 `gorm:"not null;default:0" json:"tax_amount"`
	DiscountAmount int64 `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount    int64 `gorm:"not null" json:"total_amount"`
	AmountPaid     int64 `gorm:"not null" json:"amount_paid"`
	ChangeAmount   int64 `gorm:"not null;default:0" json:"change_amount"`

	PaymentMethod PaymentMethod     `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Note          string            `gorm:"type:text" json:"note"`

	Items []TransactionItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// TransactionItem is one cart line. Product name/barcode/image are copied at
// the time of sale so historical receipts stay stable when the product changes.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`

	ProductName    string `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductBarcode string `gorm:"type:varchar(32)" json:"product_barcode"`
	ProductImage   string `gorm:"type:varchar(500)" json:"product_image"`

	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
	LineTotal int64 `gorm:"not null" json:"line_total"`
}
