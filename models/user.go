package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User account model
type User struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"` // never returned to clients
	Phone      string         `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Avatar     string         `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	City       string         `gorm:"type:varchar(50)" json:"city,omitempty"`
	Role       string         `gorm:"type:varchar(20);default:user" json:"role"`
	Status     int            `gorm:"default:1;comment:1=active,0=disabled" json:"status"`
	LastLogin  *time.Time     `json:"last_login,omitempty"`
	LoginCount int            `gorm:"default:0" json:"login_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // soft delete

	// Associations
	Cars      []Car      `gorm:"foreignKey:SellerID" json:"cars,omitempty"`
	Parts     []Part     `gorm:"foreignKey:SellerID" json:"parts,omitempty"`
	Orders    []Order    `gorm:"foreignKey:BuyerID" json:"orders,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
}

// TableName maps the model to its table
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateUUID()
	}
	return nil
}
