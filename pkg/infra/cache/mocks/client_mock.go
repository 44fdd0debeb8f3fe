package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
	"github.com/promptgauge/promptgauge/pkg/infra/cache"
)

type MockCacheClient struct {
	mock.Mock
}

func (m *MockCacheClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheClient) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheClient) GetVerdict(ctx context.Context, promptDigest string) (*assessment.TextModerationResult, error) {
	args := m.Called(ctx, promptDigest)
	verdict, _ := args.Get(0).(*assessment.TextModerationResult)
	return verdict, args.Error(1)
}

func (m *MockCacheClient) SaveVerdict(ctx context.Context, promptDigest string, verdict *assessment.TextModerationResult, ttl time.Duration) error {
	args := m.Called(ctx, promptDigest, verdict, ttl)
	return args.Error(0)
}

func (m *MockCacheClient) CreateTTLMap(name string, ttl time.Duration) *cache.TTLMap {
	args := m.Called(name, ttl)
	ttlMap, _ := args.Get(0).(*cache.TTLMap)
	return ttlMap
}

func (m *MockCacheClient) GetTTLMap(name string) *cache.TTLMap {
	args := m.Called(name)
	ttlMap, _ := args.Get(0).(*cache.TTLMap)
	return ttlMap
}
