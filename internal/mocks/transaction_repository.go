package mocks

import (
	"context"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) CreateItem(ctx context.Context, item *model.TransactionItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TransactionRepository) FindAll(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardStats), args.Error(1)
}

func (m *TransactionRepository) GetSalesByDay(ctx context.Context, startDate, endDate time.Time) ([]repository.SalesByDay, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SalesByDay), args.Error(1)
}

func (m *TransactionRepository) GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (*repository.SalesSummary, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SalesSummary), args.Error(1)
}

func (m *TransactionRepository) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProduct, error) {
	args := m.Called(ctx, startDate, endDate, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TopProduct), args.Error(1)
}
