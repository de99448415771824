package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propalyze/dao/redis"
	"propalyze/db"
	"propalyze/logger"
	"propalyze/models"
)

type failingCache struct{}

func (failingCache) GetPropertyAnalysis(string) (*models.PropertyAnalysis, error) {
	return nil, errors.New("connection reset")
}

func (failingCache) SetPropertyAnalysis(string, *models.PropertyAnalysis) error {
	return errors.New("connection reset")
}

func (failingCache) DeletePropertyAnalysis(string) error {
	return errors.New("connection reset")
}

func (failingCache) ListCachedPropertyIDs() ([]string, error) {
	return nil, errors.New("connection reset")
}

func newAnalysisFixture(t *testing.T, analysis func(ctx context.Context, id string) (*models.PropertyAnalysis, error)) (*AnalysisService, *redis.RedisPropertyAnalysisDAO) {
	t.Helper()
	dao := redis.NewRedisPropertyAnalysisDAO(db.NewMockRedisClient(), time.Minute, logger.Discard())
	svc, err := NewAnalysisService(&stubAPI{analysis: analysis}, dao, logger.Discard())
	require.NoError(t, err)
	return svc, dao
}

func TestAnalysisService_ReadThrough(t *testing.T) {
	calls := 0
	svc, dao := newAnalysisFixture(t, func(ctx context.Context, id string) (*models.PropertyAnalysis, error) {
		calls++
		return &models.PropertyAnalysis{PredictedPrice: 4200000}, nil
	})

	first := svc.GetAnalysis(context.Background(), "P-1", "")
	second := svc.GetAnalysis(context.Background(), "P-1", "")

	assert.Equal(t, 1, calls)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, 4200000.0, second.Analysis.PredictedPrice)

	cached, err := dao.GetPropertyAnalysis("P-1")
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestAnalysisService_FallbackIsNotCached(t *testing.T) {
	svc, dao := newAnalysisFixture(t, func(ctx context.Context, id string) (*models.PropertyAnalysis, error) {
		return nil, errors.New("backend down")
	})

	got := svc.GetAnalysis(context.Background(), "P-1", "")

	assert.True(t, got.Fallback)
	assert.Equal(t, ANALYSIS_ADVISORY, got.Advisory)
	assert.Equal(t, 8500000.0, got.Analysis.PredictedPrice)
	assert.Len(t, got.Analysis.Investment.History, 12)

	cached, err := dao.GetPropertyAnalysis("P-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestAnalysisService_CacheErrorsAreNotFatal(t *testing.T) {
	svc, err := NewAnalysisService(&stubAPI{analysis: func(ctx context.Context, id string) (*models.PropertyAnalysis, error) {
		return &models.PropertyAnalysis{PredictedPrice: 1}, nil
	}}, failingCache{}, logger.Discard())
	require.NoError(t, err)

	got := svc.GetAnalysis(context.Background(), "P-1", "")

	assert.False(t, got.Fallback)
	assert.Equal(t, 1.0, got.Analysis.PredictedPrice)
}

func TestAnalysisService_CorruptEntryIsDropped(t *testing.T) {
	client := db.NewMockRedisClient()
	require.NoError(t, client.Set("property_analysis_v1:P-1", "{not json", 0))
	dao := redis.NewRedisPropertyAnalysisDAO(client, time.Minute, logger.Discard())
	svc, err := NewAnalysisService(&stubAPI{analysis: func(ctx context.Context, id string) (*models.PropertyAnalysis, error) {
		return nil, errors.New("backend down")
	}}, dao, logger.Discard())
	require.NoError(t, err)

	got := svc.GetAnalysis(context.Background(), "P-1", "")

	assert.True(t, got.Fallback)
	_, err = client.Get("property_analysis_v1:P-1")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestAnalysisService_CachedPropertyIDs(t *testing.T) {
	svc, _ := newAnalysisFixture(t, func(ctx context.Context, id string) (*models.PropertyAnalysis, error) {
		return &models.PropertyAnalysis{PredictedPrice: 1}, nil
	})
	svc.GetAnalysis(context.Background(), "P-2", "")
	svc.GetAnalysis(context.Background(), "P-1", "")

	ids, err := svc.CachedPropertyIDs()

	require.NoError(t, err)
	assert.Equal(t, []string{"P-1", "P-2"}, ids)
}

func TestAnalysisService_CachedPropertyIDsError(t *testing.T) {
	svc, err := NewAnalysisService(&stubAPI{}, failingCache{}, logger.Discard())
	require.NoError(t, err)

	_, err = svc.CachedPropertyIDs()

	assert.ErrorContains(t, err, "connection reset")
}
