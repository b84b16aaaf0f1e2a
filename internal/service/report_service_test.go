package service_test

import (
	"context"
	"testing"
	"time"

	"go-pos-backend/internal/mocks"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPeriodRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("today starts at midnight", func(t *testing.T) {
		start, end := service.PeriodRange("today", now)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, now, end)
	})

	t.Run("relative windows", func(t *testing.T) {
		cases := map[string]time.Time{
			"7d":  now.AddDate(0, 0, -7),
			"1m":  now.AddDate(0, -1, 0),
			"3m":  now.AddDate(0, -3, 0),
			"6m":  now.AddDate(0, -6, 0),
			"12m": now.AddDate(0, -12, 0),
		}
		for rng, want := range cases {
			start, end := service.PeriodRange(rng, now)
			assert.Equal(t, want, start, rng)
			assert.Equal(t, now, end, rng)
		}
	})

	t.Run("unknown keyword falls back to 7 days", func(t *testing.T) {
		start, _ := service.PeriodRange("yesterday", now)
		assert.Equal(t, now.AddDate(0, 0, -7), start)
	})
}

func TestGetSalesReport(t *testing.T) {
	start := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("assembles summary, top sellers and daily points", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}

		summary := &repository.SalesSummary{
			TotalRevenue:      125000,
			TotalTransactions: 42,
			TotalItemsSold:    97,
		}
		top := []repository.TopProduct{
			{ProductName: "Coffee Beans 250g", QuantitySold: 30, Revenue: 15000},
		}
		daily := []repository.SalesByDay{
			{Date: "2025-06-14", Revenue: 20000, Transactions: 7, ItemsSold: 15},
		}

		txRepo.On("GetSalesSummary", mock.Anything, start, end).Return(summary, nil)
		txRepo.On("GetTopProducts", mock.Anything, start, end, 10).Return(top, nil)
		txRepo.On("GetSalesByDay", mock.Anything, start, end).Return(daily, nil)

		svc := service.NewReportService(txRepo)

		report, err := svc.GetSalesReport(context.Background(), start, end)

		assert.NoError(t, err)
		assert.Equal(t, "2025-06-08", report.StartDate)
		assert.Equal(t, "2025-06-15", report.EndDate)
		assert.Equal(t, int64(125000), report.Summary.TotalRevenue)
		assert.Len(t, report.TopProducts, 1)
		assert.Len(t, report.Daily, 1)
		txRepo.AssertExpectations(t)
	})
}

func TestExportXLSX(t *testing.T) {
	start := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("produces a non-empty workbook", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}

		txRepo.On("GetSalesSummary", mock.Anything, start, end).Return(&repository.SalesSummary{TotalRevenue: 500}, nil)
		txRepo.On("GetTopProducts", mock.Anything, start, end, 10).Return([]repository.TopProduct{}, nil)
		txRepo.On("GetSalesByDay", mock.Anything, start, end).Return([]repository.SalesByDay{}, nil)

		svc := service.NewReportService(txRepo)

		data, err := svc.ExportXLSX(context.Background(), start, end)

		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		// xlsx files are zip archives
		assert.Equal(t, []byte{'P', 'K'}, data[:2])
	})
}

func TestExportPDF(t *testing.T) {
	start := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("produces a non-empty document", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}

		txRepo.On("GetSalesSummary", mock.Anything, start, end).Return(&repository.SalesSummary{TotalRevenue: 500}, nil)
		txRepo.On("GetTopProducts", mock.Anything, start, end, 10).Return([]repository.TopProduct{}, nil)
		txRepo.On("GetSalesByDay", mock.Anything, start, end).Return([]repository.SalesByDay{}, nil)

		svc := service.NewReportService(txRepo)

		data, err := svc.ExportPDF(context.Background(), start, end)

		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Equal(t, []byte("%PDF"), data[:4])
	})
}
