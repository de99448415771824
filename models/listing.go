package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Listing is a single property record shown in search results.
type Listing struct {
	ID         string  `json:"id,omitempty"`
	PropertyID string  `json:"property_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	City       string  `json:"city"`
	Locality   string  `json:"locality"`
	Bhk        int     `json:"bhk"`
	Area       float64 `json:"area,omitempty"`
	Price      float64 `json:"price,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
}

// Key is a stable identifier for rendering: id, then property_id, then city-locality-bhk.
func (l Listing) Key() string {
	if l.ID != "" {
		return l.ID
	}
	if l.PropertyID != "" {
		return l.PropertyID
	}
	return fmt.Sprintf("%s-%s-%d", l.City, l.Locality, l.Bhk)
}

// UnmarshalJSON accepts numeric ids and the "photo" alias some backends use for image_url.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         flexString `json:"id"`
		PropertyID flexString `json:"property_id"`
		Title      string     `json:"title"`
		City       string     `json:"city"`
		Locality   string     `json:"locality"`
		Bhk        int        `json:"bhk"`
		Area       float64    `json:"area"`
		Price      float64    `json:"price"`
		ImageURL   string     `json:"image_url"`
		Photo      string     `json:"photo"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	*l = Listing{
		ID:         string(aux.ID),
		PropertyID: string(aux.PropertyID),
		Title:      aux.Title,
		City:       aux.City,
		Locality:   aux.Locality,
		Bhk:        aux.Bhk,
		Area:       aux.Area,
		Price:      aux.Price,
		ImageURL:   aux.ImageURL,
	}
	if l.ImageURL == "" {
		l.ImageURL = aux.Photo
	}
	return nil
}

// DecodeSearchResults accepts a bare array of listings or an object wrapping one under
// "results" or "items". The first non-empty match wins; anything else is an empty result.
func DecodeSearchResults(body []byte) ([]Listing, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Listing
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal search results array: %w", err)
		}
		if items == nil {
			items = []Listing{}
		}
		return items, nil
	}

	var wrapped struct {
		Results []Listing `json:"results"`
		Items   []Listing `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search results object: %w", err)
	}
	switch {
	case len(wrapped.Results) > 0:
		return wrapped.Results, nil
	case len(wrapped.Items) > 0:
		return wrapped.Items, nil
	}
	return []Listing{}, nil
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", strings.TrimSpace(string(data)))
	}
	*f = flexString(n.String())
	return nil
}
