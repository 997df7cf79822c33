package spot

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
	maxRating            = 5
)

// CreateRequest is the body of POST /discovery
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tag         string   `json:"tag"`
	Location    Location `json:"location"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
}

type LocationPatch struct {
	City        *string      `json:"city"`
	State       *string      `json:"state"`
	Country     *string      `json:"country"`
	Coordinates *Coordinates `json:"coordinates"`
}

// UpdateRequest is the body of PUT /discovery/{id}; nil fields are kept
type UpdateRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Tag         *string        `json:"tag"`
	Location    *LocationPatch `json:"location"`
	Image       *string        `json:"image"`
	Rating      *float64       `json:"rating"`
}

func newSpot(req CreateRequest) *Spot {
	return &Spot{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Tag:         strings.TrimSpace(req.Tag),
		Location: Location{
			City:        strings.TrimSpace(req.Location.City),
			State:       strings.TrimSpace(req.Location.State),
			Country:     strings.TrimSpace(req.Location.Country),
			Coordinates: req.Location.Coordinates,
		},
		Image:  strings.TrimSpace(req.Image),
		Rating: req.Rating,
	}
}

func (req UpdateRequest) apply(s *Spot) {
	if req.Title != nil {
		s.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		s.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tag != nil {
		s.Tag = strings.TrimSpace(*req.Tag)
	}
	if loc := req.Location; loc != nil {
		if loc.City != nil {
			s.Location.City = strings.TrimSpace(*loc.City)
		}
		if loc.State != nil {
			s.Location.State = strings.TrimSpace(*loc.State)
		}
		if loc.Country != nil {
			s.Location.Country = strings.TrimSpace(*loc.Country)
		}
		if loc.Coordinates != nil {
			s.Location.Coordinates = *loc.Coordinates
		}
	}
	if req.Image != nil {
		s.Image = strings.TrimSpace(*req.Image)
	}
	if req.Rating != nil {
		s.Rating = *req.Rating
	}
}

// validate checks s and fills its tag color from the catalogue
func validate(s *Spot) error {
	switch {
	case s.Title == "":
		return invalid("title is required")
	case utf8.RuneCountInString(s.Title) > maxTitleLength:
		return invalid("title cannot be more than %d characters", maxTitleLength)
	case utf8.RuneCountInString(s.Description) > maxDescriptionLength:
		return invalid("description cannot be more than %d characters", maxDescriptionLength)
	case s.Tag == "":
		return invalid("tag is required")
	case s.Image == "":
		return invalid("image is required")
	case math.IsNaN(s.Rating) || s.Rating < 0 || s.Rating > maxRating:
		return invalid("rating must be between 0 and %d", maxRating)
	}

	if c := s.Location.Coordinates; (c.Lat != nil && math.Abs(*c.Lat) > 90) || (c.Lng != nil && math.Abs(*c.Lng) > 180) {
		return invalid("coordinates are out of range")
	}

	color, ok := TagColor(s.Tag)
	if !ok {
		names := make([]string, len(Tags))
		for i, t := range Tags {
			names[i] = t.Name
		}
		return invalid("tag must be one of %s", strings.Join(names, ", "))
	}
	s.TagColor = color
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperr.ErrValidation}, args...)...)
}
