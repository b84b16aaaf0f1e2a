package service

import (
	"context"
	"encoding/json"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/repository"

	"go.uber.org/zap"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*repository.DashboardStats, error)
	GetSalesChart(ctx context.Context, days int) ([]repository.SalesByDay, error)
}

type dashboardService struct {
	txRepo   repository.TransactionRepository
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewDashboardService(txRepo repository.TransactionRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) DashboardService {
	return &dashboardService{txRepo: txRepo, cache: c, cacheTTL: ttl, log: log}
}

// GetStats reads through the cache; checkout and product writes invalidate
// the key, the TTL bounds staleness when invalidation is missed.
func (s *dashboardService) GetStats(ctx context.Context) (*repository.DashboardStats, error) {
	if data, ok, err := s.cache.Get(ctx, cache.KeyDashboardStats); err != nil {
		s.log.Warn("dashboard cache read failed", zap.Error(err))
	} else if ok {
		var stats repository.DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.txRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cache.KeyDashboardStats, data, s.cacheTTL); err != nil {
			s.log.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

func (s *dashboardService) GetSalesChart(ctx context.Context, days int) ([]repository.SalesByDay, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetSalesByDay(ctx, startDate, endDate)
}
