package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Budget bounds in rupees; nil means unbounded.
type Budget struct {
	Min *int64
	Max *int64
}

// SearchPayload is the body of POST /api/search.
type SearchPayload struct {
	Bhks          []BhkToken `json:"bhks"`
	Cities        []string   `json:"cities"`
	PropertyTypes []string   `json:"property_types"`
	BudgetMin     *int64     `json:"budget_min,omitempty"`
	BudgetMax     *int64     `json:"budget_max,omitempty"`
}

// ParseSearchPayload decodes the results page query. It never fails: unusable tokens are
// dropped or passed through, and an undecodable budget means no bound.
func ParseSearchPayload(vals url.Values) SearchPayload {
	bhkTokens := ParseCSVParam(vals.Get(BHKS_QUERY_ARG))
	bhks := make([]BhkToken, len(bhkTokens))
	for i, t := range bhkTokens {
		bhks[i] = ParseBhkToken(t)
	}

	budgetRaw := vals.Get(BUDGET_QUERY_ARG)
	if budgetRaw == "" {
		budgetRaw = vals.Get(PRICE_QUERY_ARG)
	}
	budget := ParseBudget(budgetRaw)

	return SearchPayload{
		Bhks:          bhks,
		Cities:        ParseCSVParam(vals.Get(CITIES_QUERY_ARG)),
		PropertyTypes: ParseCSVParam(vals.Get(TYPES_QUERY_ARG)),
		BudgetMin:     budget.Min,
		BudgetMax:     budget.Max,
	}
}

// ParseCSVParam splits on commas, trims each token and drops empty ones.
// The result is never nil so it encodes as [] rather than null.
func ParseCSVParam(value string) []string {
	out := []string{}
	if value == "" {
		return out
	}
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseBudget understands "any" and numeric "min-max" ranges only. Bucket labels such as
// "Under₹50L" have no hyphen and decode to no bound; mapping them to numbers is an open
// product decision.
func ParseBudget(budget string) Budget {
	if budget == "" || strings.EqualFold(budget, "any") {
		return Budget{}
	}
	if !strings.Contains(budget, "-") {
		return Budget{}
	}

	parts := strings.Split(budget, "-")
	b := Budget{Min: parseDigits(parts[0])}
	if len(parts) > 1 {
		b.Max = parseDigits(parts[1])
	}
	return b
}

func parseDigits(s string) *int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
