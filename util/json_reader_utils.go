package util

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"propalyze/models"
)

// ReadListingsFromJSON loads a listing set from a JSON fixture.
func ReadListingsFromJSON(fsys fs.FS, filePath string) ([]models.Listing, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	listings, err := models.DecodeSearchResults(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode listings in %q: %w", filePath, err)
	}
	return listings, nil
}

// ReadPropertyAnalysisFromJSON loads a PropertyAnalysis from a JSON fixture.
func ReadPropertyAnalysisFromJSON(fsys fs.FS, filePath string) (*models.PropertyAnalysis, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.PropertyAnalysis
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PropertyAnalysis: %w", err)
	}
	return &resp, nil
}
