package services

import (
	"context"

	"propalyze/models"
)

type stubAPI struct {
	search   func(ctx context.Context, payload models.SearchPayload) ([]models.Listing, error)
	analysis func(ctx context.Context, propertyID string) (*models.PropertyAnalysis, error)
}

func (s *stubAPI) Search(ctx context.Context, payload models.SearchPayload, cookies string) ([]models.Listing, error) {
	return s.search(ctx, payload)
}

func (s *stubAPI) GetPropertyAnalysis(ctx context.Context, propertyID string, cookies string) (*models.PropertyAnalysis, error) {
	return s.analysis(ctx, propertyID)
}

func listingsFor(payload models.SearchPayload) []models.Listing {
	out := []models.Listing{}
	for _, c := range payload.Cities {
		out = append(out, models.Listing{ID: "in-" + c, City: c})
	}
	return out
}
