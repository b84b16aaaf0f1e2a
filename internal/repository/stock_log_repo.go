package repository

import (
	"context"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLogRepository interface {
	Create(ctx context.Context, entry *model.StockLog) error
	FindByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockLog, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) Create(ctx context.Context, entry *model.StockLog) error {
	return GetTx(ctx, r.db).Create(entry).Error
}

func (r *stockLogRepo) FindByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockLog, error) {
	var logs []model.StockLog
	query := GetTx(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}
