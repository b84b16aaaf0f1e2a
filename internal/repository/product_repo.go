package repository

import (
	"context"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows FindAll results
type ProductFilter struct {
	ActiveOnly bool
	LowStock   bool
	CategoryID *uuid.UUID
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	// FindByIDForUpdate row-locks the product until the enclosing transaction
	// commits. Must be called inside TxManager.WithTx.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Save(ctx context.Context, product *model.Product) error
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return GetTx(ctx, r.db).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := GetTx(ctx, r.db).Preload("Category").Preload("CreatedByUser").Preload("UpdatedByUser")
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.LowStock {
		query = query.Where("stock <= min_stock_level")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := GetTx(ctx, r.db).Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	err := GetTx(ctx, r.db).Preload("Category").First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Save(ctx context.Context, product *model.Product) error {
	return GetTx(ctx, r.db).Save(product).Error
}

func (r *productRepo) UpdateStock(ctx context.Context, id uuid.UUID, newStock int, updatedBy string) error {
	return GetTx(ctx, r.db).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_by": updatedBy,
		}).Error
}
