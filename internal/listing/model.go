package listing

import (
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/user"
)

// Property types accepted on create and update
var PropertyTypes = []string{"Apartment", "House", "Loft", "Studio", "Condo", "Villa", "Room", "PG"}

const DefaultPropertyType = "Apartment"

// Amenities accepted on create and update
var Amenities = []string{
	"Wifi", "Kitchen", "Parking", "AC", "Pool", "Gym", "Laundry", "Pet Friendly",
	"Balcony", "Water Supply", "Lift", "Security", "Garden", "Power Backup",
}

type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Listing is a rental property offered by a host
type Listing struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	PropertyType string        `json:"propertyType"`
	Location     Location      `json:"location"`
	Price        int           `json:"price"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    int           `json:"bathrooms"`
	Sqft         *int          `json:"sqft,omitempty"`
	Amenities    []string      `json:"amenities"`
	Images       []string      `json:"images"`
	MainImage    string        `json:"mainImage"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"reviewCount"`
	Featured     bool          `json:"featured"`
	Available    bool          `json:"available"`
	HostID       uuid.UUID     `json:"hostId"`
	Host         *user.Summary `json:"host,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}
