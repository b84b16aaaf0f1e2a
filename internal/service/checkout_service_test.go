package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/mocks"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCheckoutService(
	productRepo *mocks.ProductRepository,
	txRepo *mocks.TransactionRepository,
	stockLogRepo *mocks.StockLogRepository,
	txManager *mocks.TxManager,
) service.CheckoutService {
	return service.NewCheckoutService(productRepo, txRepo, stockLogRepo, txManager, cache.Noop{}, nil, zap.NewNop())
}

func TestCheckout(t *testing.T) {
	transactionNumberPattern := regexp.MustCompile(`^TX-\d{8}-[0-9A-F]{4}$`)

	t.Run("records a multi-line sale and decrements stock", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		coffeeID := uuid.New()
		teaID := uuid.New()
		coffee := &model.Product{
			BaseModel:     model.BaseModel{ID: coffeeID},
			Barcode:       "2000000000015",
			Name:          "Coffee Beans 250g",
			Stock:         10,
			MinStockLevel: 5,
			IsActive:      true,
		}
		tea := &model.Product{
			BaseModel:     model.BaseModel{ID: teaID},
			Barcode:       "2000000000022",
			Name:          "Green Tea Box",
			Stock:         1,
			MinStockLevel: 0,
			IsActive:      true,
		}

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(coffee, nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, teaID).Return(tea, nil)
		txRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.TransactionItem")).Return(nil)
		productRepo.On("UpdateStock", mock.Anything, coffeeID, 8, "cashier-1").Return(nil)
		productRepo.On("UpdateStock", mock.Anything, teaID, 0, "cashier-1").Return(nil)
		stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		result, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: coffeeID, Quantity: 2, UnitPrice: 500},
				{ProductID: teaID, Quantity: 1, UnitPrice: 1500},
			},
			PaymentMethod: model.PaymentCash,
			AmountPaid:    3000,
		}, "cashier-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(2500), result.TotalAmount)
		assert.Equal(t, int64(500), result.ChangeAmount)
		assert.Regexp(t, transactionNumberPattern, result.TransactionNumber)

		productRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		txRepo.AssertNumberOfCalls(t, "CreateItem", 2)
		stockLogRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("rejects an empty cart before opening a transaction", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		result, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items:         nil,
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, service.ErrEmptyCart)
		txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid line quantity", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		_, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: uuid.New(), Quantity: 0, UnitPrice: 500},
			},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("fails the whole sale when one line lacks stock", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		coffeeID := uuid.New()
		teaID := uuid.New()
		coffee := &model.Product{
			BaseModel: model.BaseModel{ID: coffeeID},
			Name:      "Coffee Beans 250g",
			Stock:     10,
		}
		tea := &model.Product{
			BaseModel: model.BaseModel{ID: teaID},
			Name:      "Green Tea Box",
			Stock:     0,
		}

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(coffee, nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, teaID).Return(tea, nil)
		txRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.TransactionItem")).Return(nil)
		productRepo.On("UpdateStock", mock.Anything, coffeeID, 8, "cashier-1").Return(nil)
		stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		result, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: coffeeID, Quantity: 2, UnitPrice: 500},
				{ProductID: teaID, Quantity: 1, UnitPrice: 1500},
			},
			PaymentMethod: model.PaymentCash,
			AmountPaid:    3000,
		}, "cashier-1")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, service.ErrInsufficientStock)
	})

	t.Run("fails when a cart line references an unknown product", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		ghostID := uuid.New()

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, ghostID).Return(nil, gorm.ErrRecordNotFound)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		_, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: ghostID, Quantity: 1, UnitPrice: 100},
			},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.ErrorIs(t, err, service.ErrProductNotFound)
	})

	t.Run("two lines for the same product see the decremented stock", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		coffeeID := uuid.New()
		fresh := &model.Product{
			BaseModel: model.BaseModel{ID: coffeeID},
			Name:      "Coffee Beans 250g",
			Stock:     3,
		}
		decremented := &model.Product{
			BaseModel: model.BaseModel{ID: coffeeID},
			Name:      "Coffee Beans 250g",
			Stock:     1,
		}

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(fresh, nil).Once()
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(decremented, nil).Once()
		txRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.TransactionItem")).Return(nil)
		productRepo.On("UpdateStock", mock.Anything, coffeeID, 1, "cashier-1").Return(nil)
		stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		_, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: coffeeID, Quantity: 2, UnitPrice: 500},
				{ProductID: coffeeID, Quantity: 2, UnitPrice: 500},
			},
			PaymentMethod: model.PaymentCash,
			AmountPaid:    2000,
		}, "cashier-1")

		assert.ErrorIs(t, err, service.ErrInsufficientStock)
	})

	t.Run("a failed stock log write never fails the sale", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		coffeeID := uuid.New()
		coffee := &model.Product{
			BaseModel:     model.BaseModel{ID: coffeeID},
			Name:          "Coffee Beans 250g",
			Stock:         10,
			MinStockLevel: 5,
		}

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(coffee, nil)
		txRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.TransactionItem")).Return(nil)
		productRepo.On("UpdateStock", mock.Anything, coffeeID, 9, "cashier-1").Return(nil)
		stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(errors.New("audit table on fire"))

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		result, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: coffeeID, Quantity: 1, UnitPrice: 500},
			},
			PaymentMethod: model.PaymentCash,
			AmountPaid:    500,
		}, "cashier-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(500), result.TotalAmount)
	})

	t.Run("discount and tax adjust the total, change never goes negative", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		coffeeID := uuid.New()
		coffee := &model.Product{
			BaseModel:     model.BaseModel{ID: coffeeID},
			Name:          "Coffee Beans 250g",
			Stock:         10,
			MinStockLevel: 5,
		}

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		productRepo.On("FindByIDForUpdate", mock.Anything, coffeeID).Return(coffee, nil)
		txRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*model.TransactionItem")).Return(nil)
		productRepo.On("UpdateStock", mock.Anything, coffeeID, 8, "cashier-1").Return(nil)
		stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		result, err := svc.Checkout(context.Background(), &service.CheckoutRequest{
			Items: []service.CheckoutLine{
				{ProductID: coffeeID, Quantity: 2, UnitPrice: 500},
			},
			PaymentMethod:  model.PaymentCard,
			AmountPaid:     900,
			DiscountAmount: 200,
			TaxAmount:      100,
		}, "cashier-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(900), result.TotalAmount)
		assert.Equal(t, int64(0), result.ChangeAmount)
	})
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("maps a missing row to a business error", func(t *testing.T) {
		productRepo := &mocks.ProductRepository{}
		txRepo := &mocks.TransactionRepository{}
		stockLogRepo := &mocks.StockLogRepository{}
		txManager := &mocks.TxManager{}

		id := uuid.New()
		txRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := newCheckoutService(productRepo, txRepo, stockLogRepo, txManager)

		tx, err := svc.GetTransactionByID(context.Background(), id)
		assert.Nil(t, tx)
		assert.ErrorIs(t, err, service.ErrTransactionNotFound)
	})
}
