package service

import (
	"context"
	"errors"
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
)

const maxGenerateBatch = 10000

var ErrInvalidBatchSize = errors.New("batch size must be between 1 and 10000")

type BarcodeService interface {
	Generate(ctx context.Context, count int) ([]model.Barcode, error)
	Stats(ctx context.Context) (*repository.BarcodeStatusCounts, error)
}

type barcodeService struct {
	barcodeRepo repository.BarcodeRepository
	txManager   repository.TxManager
}

func NewBarcodeService(barcodeRepo repository.BarcodeRepository, txManager repository.TxManager) BarcodeService {
	return &barcodeService{barcodeRepo: barcodeRepo, txManager: txManager}
}

// Generate extends the pool with count sequential EAN-13 codes. The batch is
// created in one transaction so a partially-written pool never exists.
func (s *barcodeService) Generate(ctx context.Context, count int) ([]model.Barcode, error) {
	if count < 1 || count > maxGenerateBatch {
		return nil, ErrInvalidBatchSize
	}

	var generated []model.Barcode

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		lastID, err := s.barcodeRepo.MaxBarcodeID(txCtx)
		if err != nil {
			return err
		}

		generated = make([]model.Barcode, 0, count)
		for i := 1; i <= count; i++ {
			seq := lastID + int64(i)
			generated = append(generated, model.Barcode{
				BarcodeID: seq,
				Code:      EAN13(seq),
				Status:    model.BarcodeAvailable,
			})
		}
		return s.barcodeRepo.CreateBatch(txCtx, generated)
	})
	if err != nil {
		return nil, err
	}

	return generated, nil
}

func (s *barcodeService) Stats(ctx context.Context) (*repository.BarcodeStatusCounts, error) {
	return s.barcodeRepo.StatusCounts(ctx)
}

// EAN13 builds an in-store (prefix 200) EAN-13 code from a pool sequence
// number: 12 digits of payload plus the standard check digit.
func EAN13(seq int64) string {
	payload := fmt.Sprintf("200%09d", seq%1_000_000_000)

	sum := 0
	for i, r := range payload {
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	check := (10 - sum%10) % 10

	return fmt.Sprintf("%s%d", payload, check)
}
