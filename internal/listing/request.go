package listing

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000

	// Numeric fields are stored in INTEGER columns
	maxStoredInt = math.MaxInt32
)

// CreateRequest is the body of POST /listings. The host is always the
// authenticated principal.
type CreateRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"propertyType"`
	Location     Location `json:"location"`
	Price        *int     `json:"price"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	Sqft         *int     `json:"sqft"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	MainImage    string   `json:"mainImage"`
}

// LocationPatch carries the location fields of an update
type LocationPatch struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	ZipCode *string `json:"zipCode"`
}

// UpdateRequest is the body of PUT /listings/{id}. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	PropertyType *string        `json:"propertyType"`
	Location     *LocationPatch `json:"location"`
	Price        *int           `json:"price"`
	Bedrooms     *int           `json:"bedrooms"`
	Bathrooms    *int           `json:"bathrooms"`
	Sqft         *int           `json:"sqft"`
	Amenities    []string       `json:"amenities"`
	Images       []string       `json:"images"`
	MainImage    *string        `json:"mainImage"`
	Available    *bool          `json:"available"`
}

// newListing builds a listing from a create request, applying defaults
func newListing(req CreateRequest) *Listing {
	l := &Listing{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		PropertyType: strings.TrimSpace(req.PropertyType),
		Location:     trimLocation(req.Location),
		Bedrooms:     1,
		Bathrooms:    1,
		Sqft:         req.Sqft,
		Amenities:    req.Amenities,
		Images:       req.Images,
		MainImage:    strings.TrimSpace(req.MainImage),
		Available:    true,
	}
	if l.PropertyType == "" {
		l.PropertyType = DefaultPropertyType
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	return l
}

// apply copies the non-nil fields of req onto l
func (req UpdateRequest) apply(l *Listing) {
	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	if req.PropertyType != nil {
		l.PropertyType = strings.TrimSpace(*req.PropertyType)
	}
	if loc := req.Location; loc != nil {
		setString(&l.Location.Address, loc.Address)
		setString(&l.Location.City, loc.City)
		setString(&l.Location.State, loc.State)
		setString(&l.Location.Country, loc.Country)
		setString(&l.Location.ZipCode, loc.ZipCode)
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.Sqft != nil {
		l.Sqft = req.Sqft
	}
	if req.Amenities != nil {
		l.Amenities = req.Amenities
	}
	if req.Images != nil {
		l.Images = req.Images
	}
	if req.MainImage != nil {
		l.MainImage = strings.TrimSpace(*req.MainImage)
	}
	if req.Available != nil {
		l.Available = *req.Available
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func trimLocation(loc Location) Location {
	return Location{
		Address: strings.TrimSpace(loc.Address),
		City:    strings.TrimSpace(loc.City),
		State:   strings.TrimSpace(loc.State),
		Country: strings.TrimSpace(loc.Country),
		ZipCode: strings.TrimSpace(loc.ZipCode),
	}
}

// validate checks a listing about to be stored
func validate(l *Listing, priceSet bool) error {
	switch {
	case l.Title == "":
		return invalid("title is required")
	case utf8.RuneCountInString(l.Title) > maxTitleLength:
		return invalid("title cannot be more than %d characters", maxTitleLength)
	case utf8.RuneCountInString(l.Description) > maxDescriptionLength:
		return invalid("description cannot be more than %d characters", maxDescriptionLength)
	case !slices.Contains(PropertyTypes, l.PropertyType):
		return invalid("propertyType must be one of %s", strings.Join(PropertyTypes, ", "))
	case l.Location.City == "":
		return invalid("location.city is required")
	case !priceSet:
		return invalid("price is required")
	case l.Price < 0:
		return invalid("price cannot be negative")
	case l.Price > maxStoredInt:
		return invalid("price cannot be more than %d", maxStoredInt)
	case l.Bedrooms < 0 || l.Bedrooms > maxStoredInt:
		return invalid("bedrooms must be between 0 and %d", maxStoredInt)
	case l.Bathrooms < 0 || l.Bathrooms > maxStoredInt:
		return invalid("bathrooms must be between 0 and %d", maxStoredInt)
	case l.Sqft != nil && (*l.Sqft < 0 || *l.Sqft > maxStoredInt):
		return invalid("sqft must be between 0 and %d", maxStoredInt)
	case l.MainImage == "":
		return invalid("mainImage is required")
	}

	for _, a := range l.Amenities {
		if !slices.Contains(Amenities, a) {
			return invalid("unknown amenity %q", a)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperr.ErrValidation}, args...)...)
}
