package views

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propalyze/models"
	"propalyze/resources"
	"propalyze/util"
)

func TestNewListingCard(t *testing.T) {
	tests := []struct {
		name    string
		listing models.Listing
		want    ListingCard
	}{
		{
			name: "complete listing",
			listing: models.Listing{
				ID: "dummy-1", Title: "2 BHK Apartment in Koramangala", City: "Bengaluru", Locality: "Koramangala",
				Bhk: 2, Area: 950, Price: 8500000, ImageURL: "https://img/1.jpg",
			},
			want: ListingCard{
				Key: "dummy-1", Title: "2 BHK Apartment in Koramangala", ImageURL: "https://img/1.jpg",
				Location: "Bengaluru · Koramangala", Summary: "2 BHK · 950 sqft", Price: "₹ 8,500,000",
			},
		},
		{
			name:    "sparse listing",
			listing: models.Listing{City: "Pune", Locality: "Baner", Bhk: 3},
			want: ListingCard{
				Key: "Pune-Baner-3", Title: "3 BHK in Baner", ImageURL: PLACEHOLDER_IMAGE_URL,
				Location: "Pune · Baner", Summary: "3 BHK · Area N/A", Price: "₹ Contact",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewListingCard(tt.listing))
		})
	}
}

func TestResultsPage_SetListings(t *testing.T) {
	page := NewResultsPage(models.NewFilterSelection())

	page.SetListings([]models.Listing{{ID: "a"}, {ID: "b"}, {ID: "a", Title: "dup"}}, "")
	require.Len(t, page.Cards, 2)
	assert.False(t, page.Empty)

	page.SetListings([]models.Listing{}, "")
	assert.True(t, page.Empty)
}

func TestNewFilterBar(t *testing.T) {
	bar := NewFilterBar(models.DefaultFilterSelection())

	selected := func(opts []Option) []string {
		out := []string{}
		for _, o := range opts {
			if o.Selected {
				out = append(out, o.Value)
			}
		}
		return out
	}

	assert.Equal(t, []string{"Ahmedabad"}, bar.Cities)
	assert.Equal(t, []string{"Flat"}, selected(bar.PropertyTypes))
	assert.Equal(t, []string{"2 Bhk", "3 Bhk"}, selected(bar.Bhks))
	assert.Equal(t, []string{models.BUDGET_ANY}, selected(bar.Budgets))
}

func TestRenderer_Results(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	listings, err := util.ReadListingsFromJSON(resources.FS, resources.SEARCH_FALLBACK_RESOURCE)
	require.NoError(t, err)

	page := NewResultsPage(models.DefaultFilterSelection())
	var buf bytes.Buffer

	require.NoError(t, r.Render(&buf, SEARCH_START_TEMPLATE, page))
	assert.Contains(t, buf.String(), "Searching properties...")

	page.SetListings(listings, "Live search is unavailable")
	require.NoError(t, r.Render(&buf, SEARCH_RESULTS_TEMPLATE, page))

	html := buf.String()
	assert.Contains(t, html, "Live search is unavailable")
	assert.Contains(t, html, `data-key="dummy-1"`)
	assert.Contains(t, html, `data-key="dummy-2"`)
	assert.Contains(t, html, "₹ 8,500,000")
	assert.Contains(t, html, `value="Ahmedabad"`)
	assert.NotContains(t, html, "No properties found")
}

func TestRenderer_EmptyResults(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := NewResultsPage(models.NewFilterSelection())
	page.SetListings(nil, "")

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, SEARCH_RESULTS_TEMPLATE, page))

	assert.Contains(t, buf.String(), "No properties found")
	assert.NotContains(t, buf.String(), "search-error")
}

func TestRenderer_HomeAndAnalysis(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	form := models.QuickAnalysisForm{City: "Pune", PropertyType: "Plot"}
	require.NoError(t, r.Render(&buf, HOME_TEMPLATE, NewHomePage(models.DefaultFilterSelection(), form, errors.New("locality: missing required field"))))
	assert.Contains(t, buf.String(), "locality: missing required field")
	assert.Contains(t, buf.String(), `<option value="Plot" selected>`)
	assert.Contains(t, buf.String(), "4+ BHK")

	analysis, err := util.ReadPropertyAnalysisFromJSON(resources.FS, resources.PROPERTY_ANALYSIS_FALLBACK_RESOURCE)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, r.Render(&buf, ANALYSIS_TEMPLATE, NewAnalysisPage("123", analysis, "", models.QuickAnalysisForm{})))
	assert.Contains(t, buf.String(), "₹ 8,500,000")
	assert.Contains(t, buf.String(), "Air Quality Index: 112")
	assert.Contains(t, buf.String(), "/property-analysis/chart?propertyId=123")
}
