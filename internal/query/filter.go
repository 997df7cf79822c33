package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Page size defaults per listing type
const (
	DefaultListingLimit = 12
	DefaultSpotLimit    = 20
	DefaultPage         = 1
	MaxLimit            = 100
)

// ListingFilter is the validated filter descriptor for rental listings.
// Nil pointers and empty strings mean "no predicate".
type ListingFilter struct {
	City         string
	MinPrice     *int
	MaxPrice     *int
	Bedrooms     *int
	PropertyType string
	Search       string
	Page         Page
}

// SpotFilter is the validated filter descriptor for discovery spots
type SpotFilter struct {
	Tag       string
	City      string
	MinRating *float64
	Search    string
	Page      Page
}

// BuildListingFilter reads the listing allow-list from raw query values.
// Unrecognized keys are ignored.
func BuildListingFilter(values url.Values) ListingFilter {
	return ListingFilter{
		City:         text(values, "city"),
		MinPrice:     optionalInt(values, "minPrice"),
		MaxPrice:     optionalInt(values, "maxPrice"),
		Bedrooms:     optionalInt(values, "bedrooms"),
		PropertyType: text(values, "propertyType"),
		Search:       text(values, "search"),
		Page:         buildPage(values, DefaultListingLimit),
	}
}

// BuildSpotFilter reads the discovery spot allow-list from raw query values
func BuildSpotFilter(values url.Values) SpotFilter {
	return SpotFilter{
		Tag:       text(values, "tag"),
		City:      text(values, "city"),
		MinRating: optionalFloat(values, "minRating"),
		Search:    text(values, "search"),
		Page:      buildPage(values, DefaultSpotLimit),
	}
}

// Limit parses a standalone limit parameter such as the one used by the
// featured and trending endpoints
func Limit(values url.Values, defaultLimit int) int {
	return positiveInt(values, "limit", defaultLimit, MaxLimit)
}

func buildPage(values url.Values, defaultLimit int) Page {
	return Page{
		Page:  positiveInt(values, "page", DefaultPage, 0),
		Limit: positiveInt(values, "limit", defaultLimit, MaxLimit),
	}
}

// text returns the trimmed first value for key
func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func optionalInt(values url.Values, key string) *int {
	raw := text(values, key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func optionalFloat(values url.Values, key string) *float64 {
	raw := text(values, key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f { // NaN
		return nil
	}
	return &f
}

// positiveInt parses a value that must be >= 1, falling back to def.
// A max of 0 means unbounded.
func positiveInt(values url.Values, key string, def, max int) int {
	n, err := strconv.Atoi(text(values, key))
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s only ever matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a bound-parameter ILIKE pattern matching s anywhere
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
