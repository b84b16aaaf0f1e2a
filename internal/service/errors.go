package service

import "errors"

// Business errors. Handlers map these to distinct HTTP statuses and error
// codes so clients can react (prompt restock, prompt barcode generation)
// instead of showing a generic failure.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInactive     = errors.New("product is inactive")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNoBarcodesAvailable = errors.New("no barcodes available")
	ErrPriceBelowCost      = errors.New("selling price is below cost price")
	ErrDuplicateBarcode    = errors.New("barcode already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)
