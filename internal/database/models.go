package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Avatar       string    `bun:"avatar,notnull,default:''"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Spot is the discovery_spots table row
type Spot struct {
	bun.BaseModel `bun:"table:discovery_spots,alias:s"`

	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull,default:''"`
	Tag         string    `bun:"tag,notnull"`
	TagColor    string    `bun:"tag_color,notnull"`
	City        string    `bun:"city,notnull,default:''"`
	State       string    `bun:"state,notnull,default:''"`
	Country     string    `bun:"country,notnull,default:''"`
	Lat         *float64  `bun:"lat"`
	Lng         *float64  `bun:"lng"`
	Image       string    `bun:"image,notnull"`
	Rating      float64   `bun:"rating,notnull,default:0"`
	ReviewCount int       `bun:"review_count,notnull,default:0"`
	Trending    bool      `bun:"trending,notnull,default:false"`
	CreatedBy   uuid.UUID `bun:"created_by,type:uuid,nullzero"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Listing is the listings table row
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title        string    `bun:"title,notnull"`
	Description  string    `bun:"description,notnull,default:''"`
	PropertyType string    `bun:"property_type,notnull"`
	Address      string    `bun:"address,notnull,default:''"`
	City         string    `bun:"city,notnull"`
	State        string    `bun:"state,notnull,default:''"`
	Country      string    `bun:"country,notnull,default:''"`
	ZipCode      string    `bun:"zip_code,notnull,default:''"`
	Price        int       `bun:"price,notnull"`
	Bedrooms     int       `bun:"bedrooms,notnull"`
	Bathrooms    int       `bun:"bathrooms,notnull"`
	Sqft         *int      `bun:"sqft"`
	Amenities    []string  `bun:"amenities,array"`
	Images       []string  `bun:"images,array"`
	MainImage    string    `bun:"main_image,notnull"`
	Rating       float64   `bun:"rating,notnull,default:0"`
	ReviewCount  int       `bun:"review_count,notnull,default:0"`
	Featured     bool      `bun:"featured,notnull,default:false"`
	Available    bool      `bun:"available,notnull"`
	HostID       uuid.UUID `bun:"host_id,type:uuid,nullzero"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
