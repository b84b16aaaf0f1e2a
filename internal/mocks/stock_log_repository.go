package mocks

import (
	"context"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type StockLogRepository struct {
	mock.Mock
}

func (m *StockLogRepository) Create(ctx context.Context, entry *model.StockLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *StockLogRepository) FindByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockLog, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockLog), args.Error(1)
}
