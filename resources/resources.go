// Package resources embeds the JSON fixtures served when the backend is unavailable.
package resources

import "embed"

const (
	SEARCH_FALLBACK_RESOURCE            = "search_fallback.json"
	PROPERTY_ANALYSIS_FALLBACK_RESOURCE = "property_analysis_fallback.json"
)

//go:embed *.json
var FS embed.FS
