package controllers

import (
	"strconv"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/query"
	"motormandi_go/services"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
)

// AdminController handles moderation endpoints; all routes sit behind the
// admin guard
type AdminController struct{}

// NewAdminController creates an admin controller instance
func NewAdminController() *AdminController {
	return &AdminController{}
}

// GetUsers lists accounts with pagination
// @Summary List users
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.PageResponse
// @Router /api/admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = query.AdminDefaultLimit
	}

	var total int64
	config.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := config.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		utils.InternalError(c, "Failed to get users")
		return
	}

	utils.Paginate(c, gin.H{"users": users}, query.NewPageMeta(total, page, limit))
}

// DeleteUser removes an account and everything it owns
// @Summary Delete user
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "User id"
// @Success 200 {object} utils.Response
// @Router /api/admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	if userID == c.GetString("user_id") {
		utils.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := services.DeleteUserCascade(userID); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"deleted": userID})
}

// GetAllCars lists car listings for moderation, inactive ones included
// @Summary List all cars
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.PageResponse
// @Router /api/admin/cars [get]
func (ac *AdminController) GetAllCars(c *gin.Context) {
	q := query.Build(c.Request.URL.Query(), query.CarSchema().AdminView())

	var total int64
	q.Count(config.DB.Model(&models.Car{})).Count(&total)

	var cars []models.Car
	if err := q.Paginate(config.DB.Preload("Seller")).Find(&cars).Error; err != nil {
		utils.InternalError(c, "Failed to get cars")
		return
	}

	utils.Paginate(c, gin.H{"cars": cars}, query.NewPageMeta(total, q.Page, q.Limit))
}

// GetAllParts lists part listings for moderation, inactive ones included
// @Summary List all parts
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.PageResponse
// @Router /api/admin/parts [get]
func (ac *AdminController) GetAllParts(c *gin.Context) {
	q := query.Build(c.Request.URL.Query(), query.PartSchema().AdminView())

	var total int64
	q.Count(config.DB.Model(&models.Part{})).Count(&total)

	var parts []models.Part
	if err := q.Paginate(config.DB.Preload("Seller")).Find(&parts).Error; err != nil {
		utils.InternalError(c, "Failed to get parts")
		return
	}

	utils.Paginate(c, gin.H{"parts": parts}, query.NewPageMeta(total, q.Page, q.Limit))
}

// FeatureCar toggles the featured flag on a car
// @Summary Toggle car featured flag
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Car id"
// @Success 200 {object} models.Car
// @Router /api/admin/cars/{id}/feature [put]
func (ac *AdminController) FeatureCar(c *gin.Context) {
	var car models.Car
	if err := config.DB.First(&car, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Car not found")
		return
	}

	if err := config.DB.Model(&car).Update("is_featured", !car.IsFeatured).Error; err != nil {
		utils.InternalError(c, "Failed to update car")
		return
	}
	car.IsFeatured = !car.IsFeatured

	utils.Success(c, car)
}

// FeaturePart toggles the featured flag on a part
// @Summary Toggle part featured flag
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Part id"
// @Success 200 {object} models.Part
// @Router /api/admin/parts/{id}/feature [put]
func (ac *AdminController) FeaturePart(c *gin.Context) {
	var part models.Part
	if err := config.DB.First(&part, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Part not found")
		return
	}

	if err := config.DB.Model(&part).Update("is_featured", !part.IsFeatured).Error; err != nil {
		utils.InternalError(c, "Failed to update part")
		return
	}
	part.IsFeatured = !part.IsFeatured

	utils.Success(c, part)
}
