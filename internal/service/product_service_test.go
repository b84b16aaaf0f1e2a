package service_test

import (
	"context"
	"testing"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/mocks"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productServiceMocks struct {
	productRepo  *mocks.ProductRepository
	barcodeRepo  *mocks.BarcodeRepository
	categoryRepo *mocks.CategoryRepository
	stockLogRepo *mocks.StockLogRepository
	txManager    *mocks.TxManager
}

func newProductService() (service.ProductService, *productServiceMocks) {
	return newProductServiceWithCache(cache.Noop{})
}

func newProductServiceWithCache(c cache.Cache) (service.ProductService, *productServiceMocks) {
	m := &productServiceMocks{
		productRepo:  &mocks.ProductRepository{},
		barcodeRepo:  &mocks.BarcodeRepository{},
		categoryRepo: &mocks.CategoryRepository{},
		stockLogRepo: &mocks.StockLogRepository{},
		txManager:    &mocks.TxManager{},
	}
	svc := service.NewProductService(
		m.productRepo, m.barcodeRepo, m.categoryRepo, m.stockLogRepo,
		m.txManager, c, time.Minute, nil, zap.NewNop(),
	)
	return svc, m
}

func TestCreateProduct(t *testing.T) {
	t.Run("claims the lowest available barcode and marks it used", func(t *testing.T) {
		svc, m := newProductService()

		pool := &model.Barcode{ID: 7, BarcodeID: 7, Code: "2000000000077", Status: model.BarcodeAvailable}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.barcodeRepo.On("NextAvailableForUpdate", mock.Anything).Return(pool, nil)
		m.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
		m.barcodeRepo.On("UpdateStatus", mock.Anything, uint(7), model.BarcodeUsed).Return(nil)
		m.stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		product, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
			InitialStock: 10,
		}, "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, "2000000000077", product.Barcode)
		assert.True(t, product.IsActive)
		m.barcodeRepo.AssertExpectations(t)
		m.stockLogRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("rejects a selling price below cost", func(t *testing.T) {
		svc, m := newProductService()

		_, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Loss Leader",
			CostPrice:    500,
			SellingPrice: 300,
		}, "admin-1")

		assert.ErrorIs(t, err, service.ErrPriceBelowCost)
		m.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("reports an exhausted barcode pool as a business error", func(t *testing.T) {
		svc, m := newProductService()

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.barcodeRepo.On("NextAvailableForUpdate", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
		}, "admin-1")

		assert.ErrorIs(t, err, service.ErrNoBarcodesAvailable)
		m.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a unique violation on insert to a duplicate barcode error", func(t *testing.T) {
		svc, m := newProductService()

		pool := &model.Barcode{ID: 7, BarcodeID: 7, Code: "2000000000077", Status: model.BarcodeAvailable}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.barcodeRepo.On("NextAvailableForUpdate", mock.Anything).Return(pool, nil)
		m.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
		}, "admin-1")

		assert.ErrorIs(t, err, service.ErrDuplicateBarcode)
		m.barcodeRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		svc, m := newProductService()

		categoryID := uuid.New()
		m.categoryRepo.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
			CategoryID:   &categoryID,
		}, "admin-1")

		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
		m.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("skips the initial stock log when stock starts at zero", func(t *testing.T) {
		svc, m := newProductService()

		pool := &model.Barcode{ID: 1, BarcodeID: 1, Code: "2000000000015", Status: model.BarcodeAvailable}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.barcodeRepo.On("NextAvailableForUpdate", mock.Anything).Return(pool, nil)
		m.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
		m.barcodeRepo.On("UpdateStatus", mock.Anything, uint(1), model.BarcodeUsed).Return(nil)

		_, err := svc.CreateProduct(context.Background(), &service.CreateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
		}, "admin-1")

		assert.NoError(t, err)
		m.stockLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("logs a stock adjustment when the quantity changes", func(t *testing.T) {
		svc, m := newProductService()

		id := uuid.New()
		existing := &model.Product{
			BaseModel:    model.BaseModel{ID: id},
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 500,
			Stock:        10,
			IsActive:     true,
		}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.productRepo.On("FindByIDForUpdate", mock.Anything, id).Return(existing, nil)
		m.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
		m.stockLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.StockLog) bool {
			return entry.Reason == model.StockReasonAdjustment && entry.Change == -3
		})).Return(nil)

		updated, err := svc.UpdateProduct(context.Background(), id, &service.UpdateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    300,
			SellingPrice: 550,
			Stock:        7,
		}, "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, 7, updated.Stock)
		m.stockLogRepo.AssertExpectations(t)
	})

	t.Run("rejects a selling price below cost", func(t *testing.T) {
		svc, m := newProductService()

		_, err := svc.UpdateProduct(context.Background(), uuid.New(), &service.UpdateProductRequest{
			Name:         "Coffee Beans 250g",
			CostPrice:    600,
			SellingPrice: 500,
			Stock:        10,
		}, "admin-1")

		assert.ErrorIs(t, err, service.ErrPriceBelowCost)
		m.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})
}

func TestRestock(t *testing.T) {
	t.Run("adds quantity and logs the restock", func(t *testing.T) {
		svc, m := newProductService()

		id := uuid.New()
		product := &model.Product{
			BaseModel: model.BaseModel{ID: id},
			Name:      "Coffee Beans 250g",
			Stock:     2,
		}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.productRepo.On("FindByIDForUpdate", mock.Anything, id).Return(product, nil)
		m.productRepo.On("UpdateStock", mock.Anything, id, 12, "admin-1").Return(nil)
		m.stockLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.StockLog) bool {
			return entry.Reason == model.StockReasonRestock && entry.Change == 10 &&
				entry.StockBefore == 2 && entry.StockAfter == 12
		})).Return(nil)

		restocked, err := svc.Restock(context.Background(), id, &service.RestockRequest{
			Quantity: 10,
			Note:     "weekly delivery",
		}, "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, 12, restocked.Stock)
		m.productRepo.AssertExpectations(t)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		svc, m := newProductService()

		_, err := svc.Restock(context.Background(), uuid.New(), &service.RestockRequest{Quantity: 0}, "admin-1")

		assert.Error(t, err)
		m.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})
}

func TestDeactivateProduct(t *testing.T) {
	t.Run("voids the pool row alongside the product", func(t *testing.T) {
		svc, m := newProductService()

		id := uuid.New()
		product := &model.Product{
			BaseModel: model.BaseModel{ID: id},
			Barcode:   "2000000000015",
			Name:      "Coffee Beans 250g",
			IsActive:  true,
		}
		pool := &model.Barcode{ID: 1, Code: "2000000000015", Status: model.BarcodeUsed}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.productRepo.On("FindByIDForUpdate", mock.Anything, id).Return(product, nil)
		m.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
		m.barcodeRepo.On("FindByCode", mock.Anything, "2000000000015").Return(pool, nil)
		m.barcodeRepo.On("UpdateStatus", mock.Anything, uint(1), model.BarcodeVoid).Return(nil)

		err := svc.DeactivateProduct(context.Background(), id, "admin-1")

		assert.NoError(t, err)
		assert.False(t, product.IsActive)
		m.barcodeRepo.AssertExpectations(t)
	})

	t.Run("tolerates a product without a pool row", func(t *testing.T) {
		svc, m := newProductService()

		id := uuid.New()
		product := &model.Product{
			BaseModel: model.BaseModel{ID: id},
			Barcode:   "legacy-123",
			IsActive:  true,
		}

		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.productRepo.On("FindByIDForUpdate", mock.Anything, id).Return(product, nil)
		m.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
		m.barcodeRepo.On("FindByCode", mock.Anything, "legacy-123").Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeactivateProduct(context.Background(), id, "admin-1")

		assert.NoError(t, err)
		m.barcodeRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetAllProducts(t *testing.T) {
	listing := []model.Product{
		{Barcode: "2000000000015", Name: "Coffee Beans 250g", SellingPrice: 500},
		{Barcode: "2000000000022", Name: "Green Tea", SellingPrice: 300},
	}

	t.Run("unfiltered listing is cached and served without a second query", func(t *testing.T) {
		c := newMapCache()
		svc, m := newProductServiceWithCache(c)

		m.productRepo.On("FindAll", mock.Anything, repository.ProductFilter{}).Return(listing, nil).Once()

		first, err := svc.GetAllProducts(context.Background(), repository.ProductFilter{})
		assert.NoError(t, err)
		assert.Len(t, first, 2)
		assert.Contains(t, c.data, cache.KeyProductList)

		second, err := svc.GetAllProducts(context.Background(), repository.ProductFilter{})
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		m.productRepo.AssertNumberOfCalls(t, "FindAll", 1)
	})

	t.Run("filtered listing bypasses the cache", func(t *testing.T) {
		c := newMapCache()
		svc, m := newProductServiceWithCache(c)

		filter := repository.ProductFilter{ActiveOnly: true}
		m.productRepo.On("FindAll", mock.Anything, filter).Return(listing[:1], nil)

		products, err := svc.GetAllProducts(context.Background(), filter)
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NotContains(t, c.data, cache.KeyProductList)
	})

	t.Run("restock drops the cached listing", func(t *testing.T) {
		c := newMapCache()
		svc, m := newProductServiceWithCache(c)
		c.data[cache.KeyProductList] = []byte(`[]`)

		id := uuid.New()
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.productRepo.On("FindByIDForUpdate", mock.Anything, id).Return(&model.Product{Stock: 2, Name: "Coffee Beans 250g"}, nil)
		m.productRepo.On("UpdateStock", mock.Anything, mock.Anything, 12, "admin-1").Return(nil)
		m.stockLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StockLog")).Return(nil)

		_, err := svc.Restock(context.Background(), id, &service.RestockRequest{Quantity: 10}, "admin-1")
		assert.NoError(t, err)
		assert.NotContains(t, c.data, cache.KeyProductList)
	})
}

func TestGetProductByBarcode(t *testing.T) {
	t.Run("maps a missing row to a business error", func(t *testing.T) {
		svc, m := newProductService()

		m.productRepo.On("FindByBarcode", mock.Anything, "0000000000000").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetProductByBarcode(context.Background(), "0000000000000")
		assert.ErrorIs(t, err, service.ErrProductNotFound)
	})

	t.Run("reports a deactivated product instead of selling it", func(t *testing.T) {
		svc, m := newProductService()

		m.productRepo.On("FindByBarcode", mock.Anything, "2000000000015").Return(&model.Product{
			Barcode:  "2000000000015",
			Name:     "Coffee Beans 250g",
			IsActive: false,
		}, nil)

		_, err := svc.GetProductByBarcode(context.Background(), "2000000000015")
		assert.ErrorIs(t, err, service.ErrProductInactive)
	})
}
