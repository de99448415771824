package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"propalyze/api/propalyze"
	"propalyze/logger"
	"propalyze/models"
	"propalyze/resources"
	"propalyze/util"
)

const SEARCH_ADVISORY = "Live search is unavailable, showing example results."

// ErrSuperseded is returned when a newer search replaced the attempt before it finished.
var ErrSuperseded = errors.New("search superseded by a newer request")

// SearchResult is what the results page renders.
type SearchResult struct {
	Listings []models.Listing `json:"listings"`
	Advisory string           `json:"advisory,omitempty"`
	Fallback bool             `json:"fallback"`
}

// Fetcher runs a single search attempt under a CancelToken.
type Fetcher interface {
	Fetch(ctx context.Context, token *CancelToken, payload models.SearchPayload, cookies string) (*SearchResult, error)
}

// SearchService calls the search endpoint and substitutes the example listings on any failure.
type SearchService struct {
	propalyzeAPI propalyze.PropalyzeAPI
	fallback     []models.Listing
	logger       *slog.Logger
}

func NewSearchService(propalyzeAPI propalyze.PropalyzeAPI, l *slog.Logger) (*SearchService, error) {
	fallback, err := util.ReadListingsFromJSON(resources.FS, resources.SEARCH_FALLBACK_RESOURCE)
	if err != nil {
		return nil, fmt.Errorf("failed to load search fallback: %w", err)
	}
	return &SearchService{
		propalyzeAPI: propalyzeAPI,
		fallback:     fallback,
		logger:       logger.Component(l, "SearchService"),
	}, nil
}

// Fetch returns ErrSuperseded if token was cancelled at any point, and the
// request context's error if the visitor went away. Every other failure
// yields the fallback result.
func (s *SearchService) Fetch(ctx context.Context, token *CancelToken, payload models.SearchPayload, cookies string) (*SearchResult, error) {
	if token.Cancelled() {
		return nil, ErrSuperseded
	}

	listings, err := s.propalyzeAPI.Search(ctx, payload, cookies)

	if token.Cancelled() {
		return nil, ErrSuperseded
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("search abandoned: %w", ctx.Err())
		}
		logger.FromContext(ctx, s.logger).Warn("Search failed, serving fallback listings", logger.Err(err))
		return s.fallbackResult(), nil
	}

	return &SearchResult{Listings: listings}, nil
}

func (s *SearchService) fallbackResult() *SearchResult {
	listings := make([]models.Listing, len(s.fallback))
	copy(listings, s.fallback)
	return &SearchResult{Listings: listings, Advisory: SEARCH_ADVISORY, Fallback: true}
}
