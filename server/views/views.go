// Package views turns models into the data the html templates render.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"slices"

	"propalyze/models"
	"propalyze/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const PLACEHOLDER_IMAGE_URL = "https://via.placeholder.com/320x200?text=No+Image"

// Template names.
const (
	HOME_TEMPLATE           = "home"
	SEARCH_START_TEMPLATE   = "search_start"
	SEARCH_RESULTS_TEMPLATE = "search_results"
	ANALYSIS_TEMPLATE       = "analysis"
)

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FilterBar is the filter bar form pre-filled from a selection. PageID is set
// on results pages so a refined search replaces the one on the same page.
type FilterBar struct {
	PageID        string
	Cities        []string
	PropertyTypes []Option
	Bhks          []Option
	Budgets       []Option
}

func NewFilterBar(f *models.FilterSelection) FilterBar {
	return FilterBar{
		Cities:        f.Cities,
		PropertyTypes: options(models.PropertyTypeOptions, f.PropertyTypes),
		Bhks:          options(models.BhkOptions, f.Bhks),
		Budgets:       options(models.BudgetOptions, []string{f.Budget}),
	}
}

func options(all, selected []string) []Option {
	out := make([]Option, len(all))
	for i, v := range all {
		out[i] = Option{Value: v, Label: v, Selected: slices.Contains(selected, v)}
	}
	return out
}

// ListingCard is one result card.
type ListingCard struct {
	Key      string
	Title    string
	ImageURL string
	Location string
	Summary  string
	Price    string
}

func NewListingCard(l models.Listing) ListingCard {
	title := l.Title
	if title == "" {
		title = fmt.Sprintf("%d BHK in %s", l.Bhk, l.Locality)
	}
	image := l.ImageURL
	if image == "" {
		image = PLACEHOLDER_IMAGE_URL
	}
	return ListingCard{
		Key:      l.Key(),
		Title:    title,
		ImageURL: image,
		Location: l.City + " · " + l.Locality,
		Summary:  fmt.Sprintf("%d BHK · %s", l.Bhk, util.FormatArea(l.Area)),
		Price:    util.FormatPrice(l.Price),
	}
}

type HomePage struct {
	Title     string
	Filter    FilterBar
	Form      models.QuickAnalysisForm
	FormError string
	FormTypes []Option
	FormBhks  []Option
}

var quickFormTypeLabels = map[string]string{
	"Apartment":             "Apartment",
	"SingleFamilyResidence": "Single Family",
	"Plot":                  "Plot",
}

func NewHomePage(f *models.FilterSelection, form models.QuickAnalysisForm, formErr error) HomePage {
	page := HomePage{
		Title:  "Find Your Property's True Worth",
		Filter: NewFilterBar(f),
		Form:   form,
	}
	if formErr != nil {
		page.FormError = formErr.Error()
	}
	for _, t := range models.QuickFormPropertyTypes {
		page.FormTypes = append(page.FormTypes, Option{Value: t, Label: quickFormTypeLabels[t], Selected: t == form.PropertyType})
	}
	for _, b := range models.QuickFormBhkOptions {
		label := b + " BHK"
		if b == models.QuickFormBhkOptions[len(models.QuickFormBhkOptions)-1] {
			label = b + "+ BHK"
		}
		page.FormBhks = append(page.FormBhks, Option{Value: b, Label: label, Selected: b == form.Bhk})
	}
	return page
}

// ResultsPage backs both halves of the streamed results page.
type ResultsPage struct {
	Title      string
	Filter     FilterBar
	Advisory   string
	Superseded bool
	Empty      bool
	Cards      []ListingCard
}

func NewResultsPage(f *models.FilterSelection) *ResultsPage {
	return &ResultsPage{Title: "Search Results", Filter: NewFilterBar(f)}
}

// SetListings fills the cards, keeping the first card for any repeated key.
func (p *ResultsPage) SetListings(listings []models.Listing, advisory string) {
	p.Advisory = advisory
	p.Cards = make([]ListingCard, 0, len(listings))
	seen := make(map[string]struct{}, len(listings))
	for _, l := range listings {
		card := NewListingCard(l)
		if _, dup := seen[card.Key]; dup {
			continue
		}
		seen[card.Key] = struct{}{}
		p.Cards = append(p.Cards, card)
	}
	p.Empty = len(p.Cards) == 0
}

type AnalysisPage struct {
	Title          string
	Filter         FilterBar
	PropertyID     string
	Advisory       string
	PredictedPrice string
	Analysis       *models.PropertyAnalysis
	ChartURL       string
	Form           models.QuickAnalysisForm
}

func NewAnalysisPage(propertyID string, a *models.PropertyAnalysis, advisory string, form models.QuickAnalysisForm) AnalysisPage {
	chart := url.Values{}
	chart.Set("propertyId", propertyID)
	return AnalysisPage{
		Title:          "Property Analysis",
		Filter:         NewFilterBar(models.DefaultFilterSelection()),
		PropertyID:     propertyID,
		Advisory:       advisory,
		PredictedPrice: "₹ " + util.FormatNumber(a.PredictedPrice),
		Analysis:       a,
		ChartURL:       "/property-analysis/chart?" + chart.Encode(),
		Form:           form,
	}
}
