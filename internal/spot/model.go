package spot

import (
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/user"
)

const defaultTagColor = "bg-orange-400"

// Tag is a discovery category and the badge color the frontend renders
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Tags is the fixed tag catalogue in display order
var Tags = []Tag{
	{Name: "Nature", Color: "bg-orange-400"},
	{Name: "Nightlife", Color: "bg-purple-500"},
	{Name: "Active", Color: "bg-blue-400"},
	{Name: "Chill", Color: "bg-green-500"},
	{Name: "Food", Color: "bg-red-400"},
	{Name: "Culture", Color: "bg-yellow-500"},
	{Name: "Adventure", Color: "bg-teal-500"},
}

// TagColor returns the catalogue color for name
func TagColor(name string) (string, bool) {
	for _, t := range Tags {
		if t.Name == name {
			return t.Color, true
		}
	}
	return "", false
}

type Coordinates struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

type Location struct {
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Country     string      `json:"country,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// Spot is a place recommended on the discovery feed
type Spot struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tag         string        `json:"tag"`
	TagColor    string        `json:"tagColor"`
	Location    Location      `json:"location"`
	Image       string        `json:"image"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
	Trending    bool          `json:"trending"`
	CreatedBy   uuid.UUID     `json:"createdById"`
	Author      *user.Summary `json:"createdBy,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
