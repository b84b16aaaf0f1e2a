package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/mocks"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// mapCache is an in-memory Cache for tests.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestGetStats(t *testing.T) {
	t.Run("miss hits the database and fills the cache", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}
		c := newMapCache()

		stats := &repository.DashboardStats{
			TotalProducts: 12,
			LowStockCount: 3,
			TodayRevenue:  45000,
		}
		txRepo.On("GetDashboardStats", mock.Anything).Return(stats, nil)

		svc := service.NewDashboardService(txRepo, c, time.Minute, zap.NewNop())

		got, err := svc.GetStats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalProducts)
		assert.Contains(t, c.data, cache.KeyDashboardStats)
	})

	t.Run("hit skips the database", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}
		c := newMapCache()

		cached, _ := json.Marshal(&repository.DashboardStats{TotalProducts: 99})
		c.data[cache.KeyDashboardStats] = cached

		svc := service.NewDashboardService(txRepo, c, time.Minute, zap.NewNop())

		got, err := svc.GetStats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(99), got.TotalProducts)
		txRepo.AssertNotCalled(t, "GetDashboardStats", mock.Anything)
	})
}
