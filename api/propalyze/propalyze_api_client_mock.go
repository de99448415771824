package propalyze

import (
	"context"
	"fmt"
	"io/fs"

	"propalyze/models"
	"propalyze/resources"
	"propalyze/util"
)

// PropalyzeApiClientMock serves the embedded fixtures instead of calling the backend.
type PropalyzeApiClientMock struct {
	fsys fs.FS
}

func NewPropalyzeApiClientMock() *PropalyzeApiClientMock {
	return &PropalyzeApiClientMock{fsys: resources.FS}
}

func (c *PropalyzeApiClientMock) Search(ctx context.Context, payload models.SearchPayload, cookies string) ([]models.Listing, error) {
	listings, err := util.ReadListingsFromJSON(c.fsys, resources.SEARCH_FALLBACK_RESOURCE)
	if err != nil {
		return nil, fmt.Errorf("could not read search fixture: %w", err)
	}
	return listings, nil
}

func (c *PropalyzeApiClientMock) GetPropertyAnalysis(ctx context.Context, propertyID string, cookies string) (*models.PropertyAnalysis, error) {
	analysis, err := util.ReadPropertyAnalysisFromJSON(c.fsys, resources.PROPERTY_ANALYSIS_FALLBACK_RESOURCE)
	if err != nil {
		return nil, fmt.Errorf("could not read property analysis fixture: %w", err)
	}
	return analysis, nil
}
