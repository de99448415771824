package propalyze

import (
	"context"

	"propalyze/models"
)

const (
	SEARCH_ENDPOINT            = "/search"
	PROPERTY_ANALYSIS_ENDPOINT = "/property-analysis"
	PROPERTY_ID_QUERY_ARG      = "propertyId"
)

// PropalyzeAPI defines the interface for the Propalyze backend.
// cookies is the visitor's raw Cookie header, forwarded as credentials; it may be empty.
type PropalyzeAPI interface {
	Search(ctx context.Context, payload models.SearchPayload, cookies string) ([]models.Listing, error)
	GetPropertyAnalysis(ctx context.Context, propertyID string, cookies string) (*models.PropertyAnalysis, error)
}
