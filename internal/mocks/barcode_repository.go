package mocks

import (
	"context"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type BarcodeRepository struct {
	mock.Mock
}

func (m *BarcodeRepository) NextAvailableForUpdate(ctx context.Context) (*model.Barcode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Barcode), args.Error(1)
}

func (m *BarcodeRepository) UpdateStatus(ctx context.Context, id uint, status model.BarcodeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *BarcodeRepository) FindByCode(ctx context.Context, code string) (*model.Barcode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Barcode), args.Error(1)
}

func (m *BarcodeRepository) MaxBarcodeID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BarcodeRepository) CreateBatch(ctx context.Context, barcodes []model.Barcode) error {
	args := m.Called(ctx, barcodes)
	return args.Error(0)
}

func (m *BarcodeRepository) StatusCounts(ctx context.Context) (*repository.BarcodeStatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BarcodeStatusCounts), args.Error(1)
}
