package models

import (
	"time"

	"gorm.io/gorm"
)

// Part categories
var PartCategories = []string{
	"Engine",
	"Transmission",
	"Suspension",
	"Brakes",
	"Electrical",
	"Body",
	"Interior",
	"Wheels & Tyres",
	"Exhaust",
	"Accessories",
}

// Part listing model (spare parts and accessories)
type Part struct {
	ID               string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title            string         `gorm:"type:varchar(200);not null;index" json:"title"`
	Category         string         `gorm:"type:varchar(30);index;not null" json:"category"`
	Condition        string         `gorm:"type:varchar(20);default:Used;comment:New,Used" json:"condition"`
	Price            float64        `gorm:"type:decimal(12,2);not null;index" json:"price"`
	CompatibleMakes  string         `gorm:"type:text;comment:JSON string array" json:"compatible_makes,omitempty"`
	CompatibleModels string         `gorm:"type:text;comment:JSON string array" json:"compatible_models,omitempty"`
	Description      string         `gorm:"type:text" json:"description,omitempty"`
	Images           string         `gorm:"type:text;comment:JSON array of {url,id}" json:"images,omitempty"`
	City             string         `gorm:"type:varchar(50);index" json:"city"`
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

// TableName maps the model to its table
func (Part) TableName() string {
	return "parts"
}

// IsValidPartCategory reports whether category is one of the known part categories
func IsValidPartCategory(category string) bool {
	for _, c := range PartCategories {
		if c == category {
			return true
		}
	}
	return false
}

// BeforeCreate assigns a UUID primary key
func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}
