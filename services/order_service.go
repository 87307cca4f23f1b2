package services

import (
	"errors"
	"fmt"

	"motormandi_go/config"
	"motormandi_go/middleware"
	"motormandi_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService handles offers placed on listings
type OrderService struct{}

// NewOrderService creates an order service instance
func NewOrderService() *OrderService {
	return &OrderService{}
}

// CreateOrderRequest is the order creation payload
type CreateOrderRequest struct {
	ItemKind string  `json:"item_kind" binding:"required,oneof=car part"`
	ItemID   string  `json:"item_id" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Message  string  `json:"message" binding:"max=500"`
}

// Create places a pending order on an active listing
func (os *OrderService) Create(buyerID string, req *CreateOrderRequest) (*models.Order, error) {
	sellerID, active, err := listingSeller(req.ItemKind, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("listing is no longer available")
	}
	if sellerID == buyerID {
		return nil, errors.New("you cannot place an order on your own listing")
	}

	// One open order per buyer per listing
	var existing models.Order
	if err := config.DB.Where(
		"buyer_id = ? AND item_kind = ? AND item_id = ? AND status IN ?",
		buyerID, req.ItemKind, req.ItemID,
		[]string{models.OrderPending, models.OrderAccepted},
	).First(&existing).Error; err == nil {
		return nil, errors.New("you already have an open order on this listing")
	}

	order := models.Order{
		BuyerID:  buyerID,
		SellerID: sellerID,
		ItemKind: req.ItemKind,
		ItemID:   req.ItemID,
		Price:    req.Price,
		Message:  req.Message,
		Status:   models.OrderPending,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &order, nil
}

// allowed status transitions keyed by current status and acting party
var orderTransitions = map[string]map[string]string{
	models.OrderPending: {
		models.OrderAccepted:  "seller",
		models.OrderRejected:  "seller",
		models.OrderCancelled: "buyer",
	},
	models.OrderAccepted: {
		models.OrderCompleted: "seller",
		models.OrderCancelled: "buyer",
	},
}

// UpdateStatus applies a status transition on behalf of callerID
func (os *OrderService) UpdateStatus(callerID, orderID, newStatus string) (*models.Order, error) {
	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, errors.New("order not found")
	}

	actor, ok := orderTransitions[order.Status][newStatus]
	if !ok {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, newStatus)
	}

	switch actor {
	case "seller":
		if order.SellerID != callerID {
			return nil, errors.New("only the seller can perform this action")
		}
	case "buyer":
		if order.BuyerID != callerID {
			return nil, errors.New("only the buyer can perform this action")
		}
	}

	if err := config.DB.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	order.Status = newStatus

	// A completed sale takes the listing off the market
	if newStatus == models.OrderCompleted {
		go deactivateListing(order.ItemKind, order.ItemID)
	}

	return &order, nil
}

// listingSeller resolves a listing reference to its seller and active flag
func listingSeller(kind, id string) (sellerID string, active bool, err error) {
	switch kind {
	case models.ItemKindCar:
		var car models.Car
		if err := config.DB.Select("seller_id", "is_active").First(&car, "id = ?", id).Error; err != nil {
			return "", false, errors.New("car not found")
		}
		return car.SellerID, car.IsActive, nil
	case models.ItemKindPart:
		var part models.Part
		if err := config.DB.Select("seller_id", "is_active").First(&part, "id = ?", id).Error; err != nil {
			return "", false, errors.New("part not found")
		}
		return part.SellerID, part.IsActive, nil
	default:
		return "", false, errors.New("unknown listing kind")
	}
}

func deactivateListing(kind, id string) {
	var err error
	switch kind {
	case models.ItemKindCar:
		err = config.DB.Model(&models.Car{}).Where("id = ?", id).Update("is_active", false).Error
	case models.ItemKindPart:
		err = config.DB.Model(&models.Part{}).Where("id = ?", id).Update("is_active", false).Error
	}
	if err != nil {
		middleware.ErrorLogger("failed to deactivate sold listing",
			zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	}
}

// DeleteUserCascade removes a user together with their listings, favorites
// and open orders in one transaction. Used by the admin user-deletion
// operation.
func DeleteUserCascade(userID string) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return errors.New("user not found")
		}

		if user.IsAdmin() {
			return errors.New("admin accounts cannot be deleted")
		}

		if err := tx.Where("seller_id = ?", userID).Delete(&models.Car{}).Error; err != nil {
			return err
		}
		if err := tx.Where("seller_id = ?", userID).Delete(&models.Part{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buyer_id = ? OR seller_id = ?", userID, userID).
			Where("status IN ?", []string{models.OrderPending, models.OrderAccepted}).
			Delete(&models.Order{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&user).Error; err != nil {
			return err
		}

		middleware.InfoLogger("user deleted with owned records",
			zap.String("user_id", userID))
		return nil
	})
}
