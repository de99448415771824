package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"propalyze/db"
	"propalyze/models"
)

const PROPERTY_ANALYSIS_KEY_FORMAT_V1 = "property_analysis_v1:%s"

// ErrCorruptPropertyAnalysis is returned by GetPropertyAnalysis when the cached value no longer decodes.
var ErrCorruptPropertyAnalysis = errors.New("corrupt cached property analysis")

// RedisPropertyAnalysisDAO caches property analysis payloads by property ID.
type RedisPropertyAnalysisDAO struct {
	client db.RedisClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisPropertyAnalysisDAO initializes a RedisPropertyAnalysisDAO with the Redis client.
func NewRedisPropertyAnalysisDAO(client db.RedisClient, ttl time.Duration, logger *slog.Logger) *RedisPropertyAnalysisDAO {
	return &RedisPropertyAnalysisDAO{client: client, ttl: ttl, logger: logger}
}

// SetPropertyAnalysis caches the analysis for a property.
func (dao *RedisPropertyAnalysisDAO) SetPropertyAnalysis(propertyID string, a *models.PropertyAnalysis) error {
	key := fmt.Sprintf(PROPERTY_ANALYSIS_KEY_FORMAT_V1, propertyID)
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal property analysis for %s: %w", propertyID, err)
	}
	if err := dao.client.Set(key, string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set property analysis in redis: %w", err)
	}
	return nil
}

// GetPropertyAnalysis returns (nil, nil) on a cache miss.
func (dao *RedisPropertyAnalysisDAO) GetPropertyAnalysis(propertyID string) (*models.PropertyAnalysis, error) {
	key := fmt.Sprintf(PROPERTY_ANALYSIS_KEY_FORMAT_V1, propertyID)
	str, err := dao.client.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property analysis from redis: %w", err)
	}
	var a models.PropertyAnalysis
	if err := json.Unmarshal([]byte(str), &a); err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrCorruptPropertyAnalysis, propertyID, err)
	}
	return &a, nil
}

// DeletePropertyAnalysis drops the cached analysis; deleting a missing entry is not an error.
func (dao *RedisPropertyAnalysisDAO) DeletePropertyAnalysis(propertyID string) error {
	key := fmt.Sprintf(PROPERTY_ANALYSIS_KEY_FORMAT_V1, propertyID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete property analysis key %s: %w", key, err)
	}
	dao.logger.Debug("Deleted property analysis cache", "property_id", propertyID)
	return nil
}

// ListCachedPropertyIDs returns the property IDs that currently have a cached analysis.
func (dao *RedisPropertyAnalysisDAO) ListCachedPropertyIDs() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(PROPERTY_ANALYSIS_KEY_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list property analysis keys: %w", err)
	}
	prefix := fmt.Sprintf(PROPERTY_ANALYSIS_KEY_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
