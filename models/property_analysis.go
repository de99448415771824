package models

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// PropertyAnalysis is the payload of GET /api/property-analysis.
type PropertyAnalysis struct {
	PredictedPrice float64            `json:"predictedPrice"`
	Locality       LocalityAnalysis   `json:"locality"`
	Investment     InvestmentInsights `json:"investment"`
}

type LocalityAnalysis struct {
	Nearby      NearbyFacilities `json:"nearby"`
	Environment Environment      `json:"environment"`
	Other       OtherDetails     `json:"other"`
}

type NearbyFacilities struct {
	Schools   int `json:"schools"`
	Hospitals int `json:"hospitals"`
	Shops     int `json:"shops"`
	Transport int `json:"transport"`
}

type Environment struct {
	AQI           int    `json:"aqi"`
	MosquitoIndex string `json:"mosquitoIndex"`
	NoiseLevel    string `json:"noiseLevel"`
	Temperature   string `json:"temperature"`
}

type OtherDetails struct {
	Traffic     string `json:"traffic"`
	SafetyIndex string `json:"safetyIndex"`
}

type InvestmentInsights struct {
	History        []PricePoint `json:"history"`
	Recommendation string       `json:"recommendation"`
}

// PricePoint is one month of the price history; Price is in lakh.
type PricePoint struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

// QuickAnalysisForm is the home page form forwarded to the analysis page as query args.
type QuickAnalysisForm struct {
	City         string
	Locality     string
	PropertyType string
	Bhk          string
	Area         string
	Budget       string
}

var QuickFormPropertyTypes = []string{"Apartment", "SingleFamilyResidence", "Plot"}

var QuickFormBhkOptions = []string{"1", "2", "3", "4"}

var ErrMissingField = errors.New("missing required field")

// Validate checks the fields the form marks as required and the two select boxes.
func (f QuickAnalysisForm) Validate() error {
	required := []struct{ name, value string }{
		{"city", f.City},
		{"locality", f.Locality},
		{"propertyType", f.PropertyType},
		{"bhk", f.Bhk},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s: %w", r.name, ErrMissingField)
		}
	}
	if !slices.Contains(QuickFormPropertyTypes, f.PropertyType) {
		return fmt.Errorf("property type %q: %w", f.PropertyType, ErrUnknownOption)
	}
	if !slices.Contains(QuickFormBhkOptions, f.Bhk) {
		return fmt.Errorf("bhk %q: %w", f.Bhk, ErrUnknownOption)
	}
	return nil
}

// ToValues keeps every field, empty or not, so the analysis page sees the whole form.
func (f QuickAnalysisForm) ToValues() url.Values {
	return url.Values{
		"city":         {f.City},
		"locality":     {f.Locality},
		"propertyType": {f.PropertyType},
		"bhk":          {f.Bhk},
		"area":         {f.Area},
		"budget":       {f.Budget},
	}
}
