package controllers

import (
	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// UserController handles public and self-service user endpoints
type UserController struct {
	redisClient *redis.Client
}

// NewUserController creates a user controller instance
func NewUserController() *UserController {
	return &UserController{
		redisClient: getRedis(),
	}
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	Phone  string `json:"phone" binding:"omitempty,max=20"`
	Avatar string `json:"avatar" binding:"omitempty,max=255"`
	City   string `json:"city" binding:"omitempty,max=50"`
}

// GetUserProfile returns a user's public profile with their active listings
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.Response
// @Router /api/users/{id} [get]
func (uc *UserController) GetUserProfile(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var cars []models.Car
	config.DB.Where("seller_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Limit(20).
		Find(&cars)

	var parts []models.Part
	config.DB.Where("seller_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Limit(20).
		Find(&parts)

	utils.Success(c, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"avatar":     user.Avatar,
			"city":       user.City,
			"created_at": user.CreatedAt,
		},
		"cars":  cars,
		"parts": parts,
	})
}

// UpdateProfile updates the caller's own profile
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response
// @Router /api/users/profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updates := make(map[string]interface{})
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.City != "" {
		updates["city"] = req.City
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.InternalError(c, "Failed to update profile")
			return
		}
	}

	utils.Success(c, user)
}

// GetOnlineUsers returns the ids of currently connected users
// @Summary Online users
// @Tags users
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/users/online [get]
func (uc *UserController) GetOnlineUsers(c *gin.Context) {
	if uc.redisClient == nil {
		utils.Success(c, gin.H{"users": []string{}})
		return
	}

	users, err := uc.redisClient.SMembers(ctx, "online:users").Result()
	if err != nil {
		utils.InternalError(c, "Failed to get online users")
		return
	}

	utils.Success(c, gin.H{"users": users})
}
