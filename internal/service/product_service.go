package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest, userID string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, userID string) (*model.Product, error)
	Restock(ctx context.Context, id uuid.UUID, req *RestockRequest, userID string) (*model.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID, userID string) error
	GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	GetStockLogs(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockLog, error)
	CreateCategory(ctx context.Context, req *model.Category, userID string) error
	GetAllCategories(ctx context.Context) ([]model.Category, error)
}

type CreateProductRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	Unit          string     `json:"unit"`
	ImageURL      string     `json:"image_url"`
	CostPrice     int64      `json:"cost_price" validate:"gte=0"`
	SellingPrice  int64      `json:"selling_price" validate:"required,gt=0"`
	InitialStock  int        `json:"initial_stock" validate:"gte=0"`
	MinStockLevel int        `json:"min_stock_level" validate:"gte=0"`
	CategoryID    *uuid.UUID `json:"category_id"`
}

type UpdateProductRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	Unit          string     `json:"unit"`
	ImageURL      string     `json:"image_url"`
	CostPrice     int64      `json:"cost_price" validate:"gte=0"`
	SellingPrice  int64      `json:"selling_price" validate:"required,gt=0"`
	Stock         int        `json:"stock" validate:"gte=0"`
	MinStockLevel int        `json:"min_stock_level" validate:"gte=0"`
	CategoryID    *uuid.UUID `json:"category_id"`
	IsActive      *bool      `json:"is_active"`
}

type RestockRequest struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note"`
}

type productService struct {
	productRepo  repository.ProductRepository
	barcodeRepo  repository.BarcodeRepository
	categoryRepo repository.CategoryRepository
	stockLogRepo repository.StockLogRepository
	txManager    repository.TxManager
	cache        cache.Cache
	cacheTTL     time.Duration
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	barcodeRepo repository.BarcodeRepository,
	categoryRepo repository.CategoryRepository,
	stockLogRepo repository.StockLogRepository,
	txManager repository.TxManager,
	c cache.Cache,
	cacheTTL time.Duration,
	hub *ws.Hub,
	log *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		barcodeRepo:  barcodeRepo,
		categoryRepo: categoryRepo,
		stockLogRepo: stockLogRepo,
		txManager:    txManager,
		cache:        c,
		cacheTTL:     cacheTTL,
		wsHub:        hub,
		log:          log,
	}
}

// CreateProduct claims one pre-generated barcode and creates the product in
// the same transaction, so concurrent requests can never be handed the same
// barcode. An exhausted pool is a business condition, not a system error.
func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest, userID string) (*model.Product, error) {
	// 1. Validate input
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	// 2. Business rule: never sell at a loss
	if req.SellingPrice < req.CostPrice {
		return nil, fmt.Errorf("%w (cost %d, selling %d)", ErrPriceBelowCost, req.CostPrice, req.SellingPrice)
	}

	// 3. Category must exist when given
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		Stock:         req.InitialStock,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		CategoryID:    req.CategoryID,
	}
	product.CreatedBy = userID
	product.UpdatedBy = userID
	product.CreatedByUserID = &userID
	product.UpdatedByUserID = &userID

	// 4. Claim barcode + create product atomically
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		pool, err := s.barcodeRepo.NextAvailableForUpdate(txCtx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoBarcodesAvailable
			}
			return err
		}

		product.Barcode = pool.Code
		if err := s.productRepo.Create(txCtx, product); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateBarcode
			}
			return err
		}

		if err := s.barcodeRepo.UpdateStatus(txCtx, pool.ID, model.BarcodeUsed); err != nil {
			return err
		}

		if req.InitialStock > 0 {
			s.writeStockLog(txCtx, &model.StockLog{
				ProductID:   product.ID,
				UserID:      userID,
				Change:      req.InitialStock,
				StockBefore: 0,
				StockAfter:  req.InitialStock,
				Reason:      model.StockReasonInitial,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.notifyProduct("product_created", product, userID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, userID string) (*model.Product, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	if req.SellingPrice < req.CostPrice {
		return nil, fmt.Errorf("%w (cost %d, selling %d)", ErrPriceBelowCost, req.CostPrice, req.SellingPrice)
	}

	var updated *model.Product

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.productRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		oldStock := existing.Stock

		existing.Name = req.Name
		existing.Description = req.Description
		existing.Unit = req.Unit
		existing.ImageURL = req.ImageURL
		existing.CostPrice = req.CostPrice
		existing.SellingPrice = req.SellingPrice
		existing.Stock = req.Stock
		existing.MinStockLevel = req.MinStockLevel
		existing.CategoryID = req.CategoryID
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := s.productRepo.Save(txCtx, existing); err != nil {
			return err
		}

		if req.Stock != oldStock {
			s.writeStockLog(txCtx, &model.StockLog{
				ProductID:   existing.ID,
				UserID:      userID,
				Change:      req.Stock - oldStock,
				StockBefore: oldStock,
				StockAfter:  req.Stock,
				Reason:      model.StockReasonAdjustment,
			})
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.notifyProduct("product_updated", updated, userID)

	return updated, nil
}

func (s *productService) Restock(ctx context.Context, id uuid.UUID, req *RestockRequest, userID string) (*model.Product, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	var restocked *model.Product

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		newStock := product.Stock + req.Quantity
		if err := s.productRepo.UpdateStock(txCtx, product.ID, newStock, userID); err != nil {
			return err
		}

		s.writeStockLog(txCtx, &model.StockLog{
			ProductID:   product.ID,
			UserID:      userID,
			Change:      req.Quantity,
			StockBefore: product.Stock,
			StockAfter:  newStock,
			Reason:      model.StockReasonRestock,
			Note:        req.Note,
		})

		product.Stock = newStock
		restocked = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.notifyProduct("product_restocked", restocked, userID)

	return restocked, nil
}

// DeactivateProduct soft-deletes: the product stays for historical receipts,
// its barcode pool row becomes void.
func (s *productService) DeactivateProduct(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		product.IsActive = false
		product.UpdatedBy = userID
		product.UpdatedByUserID = &userID
		if err := s.productRepo.Save(txCtx, product); err != nil {
			return err
		}

		pool, err := s.barcodeRepo.FindByCode(txCtx, product.Barcode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// legacy product without a pool row
				return nil
			}
			return err
		}
		return s.barcodeRepo.UpdateStatus(txCtx, pool.ID, model.BarcodeVoid)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// GetAllProducts serves the unfiltered listing from cache; filtered queries
// always hit the database. Write paths drop the cached list via invalidate.
func (s *productService) GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if filter != (repository.ProductFilter{}) {
		return s.productRepo.FindAll(ctx, filter)
	}

	if raw, ok, err := s.cache.Get(ctx, cache.KeyProductList); err == nil && ok {
		var products []model.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, cache.KeyProductList, raw, s.cacheTTL); err != nil {
			s.log.Warn("product list cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetProductByBarcode backs the register scan flow. A deactivated product is
// reported as such so the cashier sees more than "not found".
func (s *productService) GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrProductInactive, product.Name)
	}
	return product, nil
}

func (s *productService) GetStockLogs(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockLog, error) {
	return s.stockLogRepo.FindByProductID(ctx, productID, limit)
}

func (s *productService) CreateCategory(ctx context.Context, req *model.Category, userID string) error {
	if err := validator.FirstError(req); err != nil {
		return err
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.categoryRepo.Create(ctx, req)
}

func (s *productService) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *productService) writeStockLog(ctx context.Context, entry *model.StockLog) {
	if err := s.stockLogRepo.Create(ctx, entry); err != nil {
		s.log.Warn("stock log write failed",
			zap.String("product_id", entry.ProductID.String()),
			zap.String("reason", entry.Reason),
			zap.Error(err))
	}
}

func (s *productService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyDashboardStats, cache.KeyProductList); err != nil {
		s.log.Warn("cache invalidation failed", zap.Error(err))
	}
}

func (s *productService) notifyProduct(action string, product *model.Product, userID string) {
	if s.wsHub == nil || product == nil {
		return
	}
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":      product.ID,
			"barcode": product.Barcode,
			"name":    product.Name,
			"stock":   product.Stock,
			"price":   product.SellingPrice,
		},
		"user_id": userID,
	})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
