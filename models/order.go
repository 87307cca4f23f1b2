package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing kinds referenced by orders and favorites
const (
	ItemKindCar  = "car"
	ItemKindPart = "part"
)

// Order statuses
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a buyer's offer on a listing
type Order struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	BuyerID   string         `gorm:"type:varchar(36);index;not null" json:"buyer_id"`
	SellerID  string         `gorm:"type:varchar(36);index;not null" json:"seller_id"`
	ItemKind  string         `gorm:"type:varchar(10);not null;comment:car,part" json:"item_kind"`
	ItemID    string         `gorm:"type:varchar(36);index;not null" json:"item_id"`
	Price     float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	Message   string         `gorm:"type:varchar(500)" json:"message,omitempty"`
	Status    string         `gorm:"type:varchar(20);default:pending;comment:pending,accepted,rejected,completed,cancelled" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Associations
	Buyer  User `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// Favorite marks a listing saved by a user
type Favorite struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);uniqueIndex:idx_fav_user_item;not null" json:"user_id"`
	ItemKind  string    `gorm:"type:varchar(10);uniqueIndex:idx_fav_user_item;not null" json:"item_kind"`
	ItemID    string    `gorm:"type:varchar(36);uniqueIndex:idx_fav_user_item;index;not null" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName maps the model to its table
func (Order) TableName() string {
	return "orders"
}

func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate assigns a UUID primary key
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = generateUUID()
	}
	return nil
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = generateUUID()
	}
	return nil
}
