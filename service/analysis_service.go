package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"propalyze/api/propalyze"
	"propalyze/dao/redis"
	"propalyze/logger"
	"propalyze/models"
	"propalyze/resources"
	"propalyze/util"
)

const ANALYSIS_ADVISORY = "Live analysis is unavailable, showing an illustrative example."

// AnalysisCache is satisfied by the Redis property analysis DAO.
type AnalysisCache interface {
	GetPropertyAnalysis(propertyID string) (*models.PropertyAnalysis, error)
	SetPropertyAnalysis(propertyID string, a *models.PropertyAnalysis) error
	DeletePropertyAnalysis(propertyID string) error
	ListCachedPropertyIDs() ([]string, error)
}

type AnalysisResult struct {
	Analysis *models.PropertyAnalysis
	Advisory string
	Fallback bool
	Cached   bool
}

// AnalysisService is a read-through cache in front of the property analysis endpoint.
type AnalysisService struct {
	propalyzeAPI propalyze.PropalyzeAPI
	cache        AnalysisCache
	fallback     *models.PropertyAnalysis
	logger       *slog.Logger
}

func NewAnalysisService(propalyzeAPI propalyze.PropalyzeAPI, cache AnalysisCache, l *slog.Logger) (*AnalysisService, error) {
	fallback, err := util.ReadPropertyAnalysisFromJSON(resources.FS, resources.PROPERTY_ANALYSIS_FALLBACK_RESOURCE)
	if err != nil {
		return nil, fmt.Errorf("failed to load property analysis fallback: %w", err)
	}
	return &AnalysisService{
		propalyzeAPI: propalyzeAPI,
		cache:        cache,
		fallback:     fallback,
		logger:       logger.Component(l, "AnalysisService"),
	}, nil
}

// GetAnalysis never fails: cache errors are logged and upstream errors yield the fallback, which is not cached.
func (s *AnalysisService) GetAnalysis(ctx context.Context, propertyID, cookies string) *AnalysisResult {
	log := logger.FromContext(ctx, s.logger).With("property_id", propertyID)

	cached, err := s.cache.GetPropertyAnalysis(propertyID)
	if err != nil {
		log.Warn("Property analysis cache read failed", logger.Err(err))
	}
	if errors.Is(err, redis.ErrCorruptPropertyAnalysis) {
		if err := s.cache.DeletePropertyAnalysis(propertyID); err != nil {
			log.Warn("Failed to drop corrupt property analysis", logger.Err(err))
		}
	}
	if cached != nil {
		return &AnalysisResult{Analysis: cached, Cached: true}
	}

	analysis, err := s.propalyzeAPI.GetPropertyAnalysis(ctx, propertyID, cookies)
	if err != nil {
		log.Warn("Property analysis failed, serving fallback", logger.Err(err))
		return &AnalysisResult{Analysis: s.fallback, Advisory: ANALYSIS_ADVISORY, Fallback: true}
	}

	if err := s.cache.SetPropertyAnalysis(propertyID, analysis); err != nil {
		log.Warn("Property analysis cache write failed", logger.Err(err))
	}
	return &AnalysisResult{Analysis: analysis}
}

// CachedPropertyIDs lists the properties with a cached analysis, sorted.
func (s *AnalysisService) CachedPropertyIDs() ([]string, error) {
	ids, err := s.cache.ListCachedPropertyIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list cached property analyses: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}
