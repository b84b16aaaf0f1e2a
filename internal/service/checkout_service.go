package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutService interface {
	Checkout(ctx context.Context, req *CheckoutRequest, userID string) (*CheckoutResult, error)
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

// CheckoutLine is one cart line
type CheckoutLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice int64     `json:"unit_price" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items          []CheckoutLine      `json:"items"`
	PaymentMethod  model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER QRIS"`
	AmountPaid     int64               `json:"amount_paid" validate:"gte=0"`
	DiscountAmount int64               `json:"discount_amount" validate:"gte=0"`
	TaxAmount      int64               `json:"tax_amount" validate:"gte=0"`
	Note           string              `json:"note"`
}

type CheckoutResult struct {
	TransactionID     uuid.UUID `json:"transaction_id"`
	TransactionNumber string    `json:"transaction_number"`
	TotalAmount       int64     `json:"total_amount"`
	ChangeAmount      int64     `json:"change_amount"`
}

type checkoutService struct {
	productRepo  repository.ProductRepository
	txRepo       repository.TransactionRepository
	stockLogRepo repository.StockLogRepository
	txManager    repository.TxManager
	cache        cache.Cache
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewCheckoutService(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	stockLogRepo repository.StockLogRepository,
	txManager repository.TxManager,
	c cache.Cache,
	hub *ws.Hub,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		productRepo:  productRepo,
		txRepo:       txRepo,
		stockLogRepo: stockLogRepo,
		txManager:    txManager,
		cache:        c,
		wsHub:        hub,
		log:          log,
	}
}

// Checkout applies the whole cart atomically: one Transaction header, one
// TransactionItem per line, and the matching stock decrements all commit
// together or not at all. Lines are processed in order; two lines for the
// same product each see the already-decremented in-transaction stock, so a
// single cart can never over-sell.
func (s *checkoutService) Checkout(ctx context.Context, req *CheckoutRequest, userID string) (*CheckoutResult, error) {
	// 1. Reject an empty cart before touching the database
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Validate input
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}
	for _, line := range req.Items {
		if err := validator.FirstError(&line); err != nil {
			return nil, err
		}
	}

	// 3. Compute amounts
	var subtotal int64
	for _, line := range req.Items {
		subtotal += int64(line.Quantity) * line.UnitPrice
	}
	total := subtotal + req.TaxAmount - req.DiscountAmount
	if total < 0 {
		total = 0
	}
	change := req.AmountPaid - total
	if change < 0 {
		change = 0
	}

	header := &model.Transaction{
		TransactionNumber: newTransactionNumber(time.Now()),
		Subtotal:          subtotal,
		TaxAmount:         req.TaxAmount,
		DiscountAmount:    req.DiscountAmount,
		TotalAmount:       total,
		AmountPaid:        req.AmountPaid,
		ChangeAmount:      change,
		PaymentMethod:     req.PaymentMethod,
		Status:            model.TransactionCompleted,
		Note:              req.Note,
		CreatedByUserID:   &userID,
	}
	header.CreatedBy = userID
	header.UpdatedBy = userID

	var lowStock []model.Product

	// 4. Atomic block: header, items, decrements
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.txRepo.Create(txCtx, header); err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := s.productRepo.FindByIDForUpdate(txCtx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			if product.Stock < line.Quantity {
				return fmt.Errorf("%w for %s (have %d, need %d)",
					ErrInsufficientStock, product.Name, product.Stock, line.Quantity)
			}

			item := &model.TransactionItem{
				TransactionID:  header.ID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				ProductBarcode: product.Barcode,
				ProductImage:   product.ImageURL,
				Quantity:       line.Quantity,
				UnitPrice:      line.UnitPrice,
				LineTotal:      int64(line.Quantity) * line.UnitPrice,
			}
			item.CreatedBy = userID
			item.UpdatedBy = userID
			if err := s.txRepo.CreateItem(txCtx, item); err != nil {
				return err
			}

			newStock := product.Stock - line.Quantity
			if err := s.productRepo.UpdateStock(txCtx, product.ID, newStock, userID); err != nil {
				return err
			}

			// Best-effort audit row, never fails the sale
			s.writeStockLog(txCtx, &model.StockLog{
				ProductID:   product.ID,
				UserID:      userID,
				Change:      -line.Quantity,
				StockBefore: product.Stock,
				StockAfter:  newStock,
				Reason:      model.StockReasonSale,
				Note:        header.TransactionNumber,
			})

			if newStock <= product.MinStockLevel {
				p := *product
				p.Stock = newStock
				lowStock = append(lowStock, p)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cache.KeyDashboardStats, cache.KeyProductList); err != nil {
		s.log.Warn("cache invalidation failed", zap.Error(err))
	}

	s.notifySale(header, lowStock, userID)

	return &CheckoutResult{
		TransactionID:     header.ID,
		TransactionNumber: header.TransactionNumber,
		TotalAmount:       header.TotalAmount,
		ChangeAmount:      header.ChangeAmount,
	}, nil
}

func (s *checkoutService) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.txRepo.FindAll(ctx)
}

func (s *checkoutService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *checkoutService) writeStockLog(ctx context.Context, entry *model.StockLog) {
	if err := s.stockLogRepo.Create(ctx, entry); err != nil {
		s.log.Warn("stock log write failed",
			zap.String("product_id", entry.ProductID.String()),
			zap.String("reason", entry.Reason),
			zap.Error(err))
	}
}

func (s *checkoutService) notifySale(header *model.Transaction, lowStock []model.Product, userID string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_completed",
			"transaction": map[string]interface{}{
				"id":           header.ID,
				"number":       header.TransactionNumber,
				"total_amount": header.TotalAmount,
			},
			"user_id": userID,
		})
		for _, p := range lowStock {
			s.wsHub.BroadcastJSON(map[string]interface{}{
				"type":   "stock_update",
				"action": "low_stock_alert",
				"product": map[string]interface{}{
					"id":              p.ID,
					"barcode":         p.Barcode,
					"name":            p.Name,
					"stock":           p.Stock,
					"min_stock_level": p.MinStockLevel,
				},
			})
		}
	}()
}

// newTransactionNumber builds a human-readable receipt number:
// TX-YYYYMMDD-XXXX, XXXX being 4 random uppercase hex characters. There is
// no uniqueness retry; a same-day collision surfaces as a unique-constraint
// error from the insert.
func newTransactionNumber(t time.Time) string {
	var b [2]byte
	rand.Read(b[:])
	return fmt.Sprintf("TX-%s-%02X%02X", t.Format("20060102"), b[0], b[1])
}
