package propalyze

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"propalyze/api"
	"propalyze/models"
)

// PropalyzeApiClient embeds the common HTTPClient
type PropalyzeApiClient struct {
	*api.HTTPClient
}

func NewPropalyzeApiClient(httpClient *api.HTTPClient) *PropalyzeApiClient {
	return &PropalyzeApiClient{
		HTTPClient: httpClient,
	}
}

// Search posts the payload to the search endpoint and decodes whichever result shape comes back.
func (c *PropalyzeApiClient) Search(ctx context.Context, payload models.SearchPayload, cookies string) ([]models.Listing, error) {
	body, err := c.Do(ctx, http.MethodPost, SEARCH_ENDPOINT, credentialHeaders(cookies), payload)
	if err != nil {
		return nil, err
	}
	return models.DecodeSearchResults(body)
}

// GetPropertyAnalysis retrieves the predicted price, locality facts and price history of a property.
func (c *PropalyzeApiClient) GetPropertyAnalysis(ctx context.Context, propertyID string, cookies string) (*models.PropertyAnalysis, error) {
	q := url.Values{}
	q.Set(PROPERTY_ID_QUERY_ARG, propertyID)

	var response models.PropertyAnalysis
	err := c.Request(ctx, http.MethodGet, PROPERTY_ANALYSIS_ENDPOINT+"?"+q.Encode(), credentialHeaders(cookies), nil, &response)
	if err != nil {
		return nil, fmt.Errorf("property analysis for %q: %w", propertyID, err)
	}
	return &response, nil
}

func credentialHeaders(cookies string) map[string]string {
	if cookies == "" {
		return nil
	}
	return map[string]string{"Cookie": cookies}
}
