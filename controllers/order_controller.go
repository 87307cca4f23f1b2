package controllers

import (
	"time"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/services"
	"motormandi_go/utils"
	"motormandi_go/websocket"

	"github.com/gin-gonic/gin"
)

// OrderController handles offers placed on listings
type OrderController struct {
	orderService *services.OrderService
}

// NewOrderController creates an order controller instance
func NewOrderController() *OrderController {
	return &OrderController{
		orderService: services.NewOrderService(),
	}
}

// UpdateOrderStatusRequest is the status transition payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected completed cancelled"`
}

// CreateOrder places an offer on a listing
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body services.CreateOrderRequest true "Order details"
// @Success 201 {object} models.Order
// @Router /api/orders [post]
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	if !utils.APIRateLimit(c, userID, 30, time.Minute) {
		utils.BadRequest(c, "Too many requests, slow down")
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	order, err := oc.orderService.Create(userID, &req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Push the event to the seller if they are connected
	go websocket.Notify(order.SellerID, websocket.EventOrderPlaced, gin.H{
		"order_id":  order.ID,
		"item_kind": order.ItemKind,
		"item_id":   order.ItemID,
		"price":     order.Price,
	})

	utils.Created(c, order)
}

// GetMyOrders lists orders placed by the caller
// @Summary List placed orders
// @Tags orders
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /api/orders [get]
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	var orders []models.Order
	if err := config.DB.Preload("Seller").
		Where("buyer_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.InternalError(c, "Failed to get orders")
		return
	}

	utils.Success(c, gin.H{"orders": orders})
}

// GetReceivedOrders lists orders on the caller's listings
// @Summary List received orders
// @Tags orders
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /api/orders/received [get]
func (oc *OrderController) GetReceivedOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	var orders []models.Order
	if err := config.DB.Preload("Buyer").
		Where("seller_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.InternalError(c, "Failed to get received orders")
		return
	}

	utils.Success(c, gin.H{"orders": orders})
}

// UpdateOrderStatus applies a status transition
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Order id"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Router /api/orders/{id}/status [put]
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	order, err := oc.orderService.UpdateStatus(userID, orderID, req.Status)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Inform the counterparty about the transition
	recipient := order.BuyerID
	if userID == order.BuyerID {
		recipient = order.SellerID
	}
	go websocket.Notify(recipient, websocket.EventOrderUpdated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})

	if order.Status == models.OrderCompleted {
		go websocket.Notify(order.BuyerID, websocket.EventListingSold, gin.H{
			"item_kind": order.ItemKind,
			"item_id":   order.ItemID,
		})
	}

	utils.Success(c, order)
}
