package models

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// Query keys shared by the filter bar encoder and the search payload decoder.
const (
	CITIES_QUERY_ARG = "cities"
	BHKS_QUERY_ARG   = "bhks"
	TYPES_QUERY_ARG  = "types"
	BUDGET_QUERY_ARG = "budget"
	PRICE_QUERY_ARG  = "price" // legacy alias of budget
)

const BUDGET_ANY = "Any"

const bhkUnitSuffix = " Bhk"

var PropertyTypeOptions = []string{"Flat", "House/Villa", "Plot"}

var BhkOptions = []string{"1 Bhk", "2 Bhk", "3 Bhk", "4 Bhk", "5+ Bhk"}

var BudgetOptions = []string{
	BUDGET_ANY,
	"Under ₹50L",
	"₹50L - ₹1Cr",
	"₹1Cr - ₹2Cr",
	"₹2Cr+",
}

// ErrUnknownOption is returned when a chip or bucket label is not one of the offered options.
var ErrUnknownOption = errors.New("unknown filter option")

// FilterSelection is the filter bar state before it is serialized into the search URL.
// Cities keep insertion order; types and bhks keep the order they were toggled on.
type FilterSelection struct {
	Cities        []string
	PropertyTypes []string
	Bhks          []string
	Budget        string
}

// NewFilterSelection returns an empty selection with the neutral budget.
func NewFilterSelection() *FilterSelection {
	return &FilterSelection{Budget: BUDGET_ANY}
}

// DefaultFilterSelection returns the selection the filter bar is pre-filled with on page load.
func DefaultFilterSelection() *FilterSelection {
	return &FilterSelection{
		Cities:        []string{"Ahmedabad"},
		PropertyTypes: []string{"Flat"},
		Bhks:          []string{"2 Bhk", "3 Bhk"},
		Budget:        BUDGET_ANY,
	}
}

// AddCity appends a city token. Blank input and duplicates are ignored.
func (f *FilterSelection) AddCity(city string) {
	city = strings.TrimSpace(city)
	if city == "" || slices.Contains(f.Cities, city) {
		return
	}
	f.Cities = append(f.Cities, city)
}

func (f *FilterSelection) RemoveCity(city string) {
	f.Cities = slices.DeleteFunc(f.Cities, func(c string) bool { return c == city })
}

// RemoveLastCity drops the most recent token, as backspace does on an empty city input.
func (f *FilterSelection) RemoveLastCity() {
	if len(f.Cities) == 0 {
		return
	}
	f.Cities = f.Cities[:len(f.Cities)-1]
}

func (f *FilterSelection) ToggleType(propertyType string) error {
	if !slices.Contains(PropertyTypeOptions, propertyType) {
		return fmt.Errorf("property type %q: %w", propertyType, ErrUnknownOption)
	}
	f.PropertyTypes = toggle(f.PropertyTypes, propertyType)
	return nil
}

func (f *FilterSelection) ToggleBhk(bhk string) error {
	if !slices.Contains(BhkOptions, bhk) {
		return fmt.Errorf("bhk %q: %w", bhk, ErrUnknownOption)
	}
	f.Bhks = toggle(f.Bhks, bhk)
	return nil
}

func (f *FilterSelection) SetBudget(bucket string) error {
	if !slices.Contains(BudgetOptions, bucket) {
		return fmt.Errorf("budget %q: %w", bucket, ErrUnknownOption)
	}
	f.Budget = bucket
	return nil
}

// ToValues serializes the selection into the search page query. Empty collections and the
// "Any" budget are omitted. Tokens are comma-joined as-is, so a comma inside a city name
// will split into two cities on the way back.
func (f *FilterSelection) ToValues() url.Values {
	q := url.Values{}

	if len(f.Cities) > 0 {
		q.Set(CITIES_QUERY_ARG, strings.Join(f.Cities, ","))
	}
	if len(f.Bhks) > 0 {
		bhks := make([]string, len(f.Bhks))
		for i, b := range f.Bhks {
			bhks[i] = strings.Replace(b, bhkUnitSuffix, "", 1)
		}
		q.Set(BHKS_QUERY_ARG, strings.Join(bhks, ","))
	}
	if len(f.PropertyTypes) > 0 {
		q.Set(TYPES_QUERY_ARG, strings.Join(f.PropertyTypes, ","))
	}
	if f.Budget != "" && f.Budget != BUDGET_ANY {
		q.Set(BUDGET_QUERY_ARG, stripSpaces(f.Budget))
	}

	return q
}

// SelectionFromValues rebuilds the filter bar state from a search page query so the bar
// can be shown pre-filled. Tokens that do not map back to an offered option are dropped,
// and an unrecognized budget becomes "Any".
func SelectionFromValues(q url.Values) *FilterSelection {
	f := NewFilterSelection()

	for _, city := range ParseCSVParam(q.Get(CITIES_QUERY_ARG)) {
		f.AddCity(city)
	}
	for _, t := range ParseCSVParam(q.Get(TYPES_QUERY_ARG)) {
		_ = f.ToggleType(t)
	}
	for _, b := range ParseCSVParam(q.Get(BHKS_QUERY_ARG)) {
		for _, opt := range BhkOptions {
			if strings.Replace(opt, bhkUnitSuffix, "", 1) == b && !slices.Contains(f.Bhks, opt) {
				f.Bhks = append(f.Bhks, opt)
			}
		}
	}
	if budget := q.Get(BUDGET_QUERY_ARG); budget != "" {
		for _, opt := range BudgetOptions {
			if stripSpaces(opt) == budget {
				f.Budget = opt
			}
		}
	}

	return f
}

// SearchPath is the results page URL the filter bar navigates to.
func (f *FilterSelection) SearchPath() string {
	return "/search?" + f.ToValues().Encode()
}

func toggle(ss []string, s string) []string {
	if slices.Contains(ss, s) {
		return slices.DeleteFunc(ss, func(x string) bool { return x == s })
	}
	return append(ss, s)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
