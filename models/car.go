package models

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Fuel types
const (
	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelHybrid   = "Hybrid"
	FuelElectric = "Electric"
	FuelCNG      = "CNG"
	FuelLPG      = "LPG"
)

// FuelTypes lists the accepted fuel_type values
var FuelTypes = []string{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelCNG, FuelLPG}

// IsValidFuelType reports whether value is a known fuel type
func IsValidFuelType(value string) bool {
	for _, fuelType := range FuelTypes {
		if value == fuelType {
			return true
		}
	}
	return false
}

// Car listing model
type Car struct {
	ID               string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title            string         `gorm:"type:varchar(200);not null;index" json:"title"`
	Slug             string         `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Make             string         `gorm:"type:varchar(50);index;not null" json:"make"`
	Model            string         `gorm:"type:varchar(50);index;not null" json:"model"`
	Variant          string         `gorm:"type:varchar(50)" json:"variant,omitempty"`
	Year             int            `gorm:"index;not null" json:"year"`
	Price            float64        `gorm:"type:decimal(12,2);not null;index" json:"price"`
	Mileage          int            `gorm:"default:0" json:"mileage"`
	FuelType         string         `gorm:"type:varchar(20);comment:Petrol,Diesel,Hybrid,Electric,CNG,LPG" json:"fuel_type"`
	Transmission     string         `gorm:"type:varchar(20);comment:Automatic,Manual" json:"transmission"`
	EngineCapacity   string         `gorm:"type:varchar(20)" json:"engine_capacity,omitempty"`
	Color            string         `gorm:"type:varchar(30)" json:"color,omitempty"`
	BodyType         string         `gorm:"type:varchar(30);default:Sedan" json:"body_type"`
	City             string         `gorm:"type:varchar(50);index" json:"city"`
	RegistrationCity string         `gorm:"type:varchar(50)" json:"registration_city,omitempty"`
	Assembly         string         `gorm:"type:varchar(20);default:Local;comment:Local,Imported" json:"assembly"`
	Condition        string         `gorm:"type:varchar(20);default:Used;comment:New,Used" json:"condition"`
	Description      string         `gorm:"type:text" json:"description,omitempty"`
	Features         string         `gorm:"type:text;comment:JSON string array" json:"features,omitempty"`
	Images           string         `gorm:"type:text;comment:JSON array of {url,id}" json:"images,omitempty"`
	ContactPhone     string         `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	SellerID         string         `gorm:"type:varchar(36);index;not null" json:"seller_id"`
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	Views            int64          `gorm:"default:0" json:"views"`
	Favorites        int64          `gorm:"default:0" json:"favorites"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Associations
	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// ListingImage is one entry of a listing's images JSON column
type ListingImage struct {
	URL string `json:"url"`
	ID  string `json:"id,omitempty"`
}

// TableName maps the model to its table
func (Car) TableName() string {
	return "cars"
}

// MakeListingSlug builds a URL slug from a listing title and its creation
// time. Uniqueness is enforced by the slug column's unique index.
func MakeListingSlug(title string, createdAt time.Time) string {
	return slug.Make(fmt.Sprintf("%s %d", title, createdAt.Unix()))
}

// BeforeCreate assigns a UUID primary key and derives the slug
func (car *Car) BeforeCreate(tx *gorm.DB) error {
	if car.ID == "" {
		car.ID = generateUUID()
	}
	if car.Slug == "" {
		createdAt := car.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		car.Slug = MakeListingSlug(car.Title, createdAt)
	}
	return nil
}
