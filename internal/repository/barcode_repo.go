package repository

import (
	"context"

	"go-pos-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BarcodeStatusCounts holds per-status pool totals
type BarcodeStatusCounts struct {
	Available int64 `json:"available"`
	Used      int64 `json:"used"`
	Void      int64 `json:"void"`
}

type BarcodeRepository interface {
	// NextAvailableForUpdate claims the available row with the lowest
	// barcode_id, holding a row lock until the enclosing transaction commits
	// so concurrent allocations never see the same row. Returns
	// gorm.ErrRecordNotFound when the pool is exhausted.
	NextAvailableForUpdate(ctx context.Context) (*model.Barcode, error)
	UpdateStatus(ctx context.Context, id uint, status model.BarcodeStatus) error
	FindByCode(ctx context.Context, code string) (*model.Barcode, error)
	MaxBarcodeID(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, barcodes []model.Barcode) error
	StatusCounts(ctx context.Context) (*BarcodeStatusCounts, error)
}

type barcodeRepo struct {
	db *gorm.DB
}

func NewBarcodeRepo(db *gorm.DB) BarcodeRepository {
	return &barcodeRepo{db}
}

func (r *barcodeRepo) NextAvailableForUpdate(ctx context.Context) (*model.Barcode, error) {
	var barcode model.Barcode
	err := GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", model.BarcodeAvailable).
		Order("barcode_id ASC").
		First(&barcode).Error
	if err != nil {
		return nil, err
	}
	return &barcode, nil
}

func (r *barcodeRepo) UpdateStatus(ctx context.Context, id uint, status model.BarcodeStatus) error {
	return GetTx(ctx, r.db).Model(&model.Barcode{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *barcodeRepo) FindByCode(ctx context.Context, code string) (*model.Barcode, error) {
	var barcode model.Barcode
	if err := GetTx(ctx, r.db).First(&barcode, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &barcode, nil
}

func (r *barcodeRepo) MaxBarcodeID(ctx context.Context) (int64, error) {
	var max int64
	err := GetTx(ctx, r.db).Model(&model.Barcode{}).
		Select("COALESCE(MAX(barcode_id), 0)").
		Scan(&max).Error
	return max, err
}

func (r *barcodeRepo) CreateBatch(ctx context.Context, barcodes []model.Barcode) error {
	if len(barcodes) == 0 {
		return nil
	}
	return GetTx(ctx, r.db).CreateInBatches(barcodes, 500).Error
}

func (r *barcodeRepo) StatusCounts(ctx context.Context) (*BarcodeStatusCounts, error) {
	var counts BarcodeStatusCounts
	db := GetTx(ctx, r.db)
	if err := db.Model(&model.Barcode{}).Where("status = ?", model.BarcodeAvailable).Count(&counts.Available).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Barcode{}).Where("status = ?", model.BarcodeUsed).Count(&counts.Used).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Barcode{}).Where("status = ?", model.BarcodeVoid).Count(&counts.Void).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
