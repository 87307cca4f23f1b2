package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/query"
	"motormandi_go/services"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CarController handles car listing endpoints
type CarController struct {
	redisClient *redis.Client
	carService  *services.CarService
	validator   *utils.Validator
}

// NewCarController creates a car controller instance
func NewCarController() *CarController {
	return &CarController{
		redisClient: getRedis(),
		carService:  services.NewCarService(),
		validator:   utils.NewValidator(),
	}
}

// CreateCarRequest is the car creation payload
type CreateCarRequest struct {
	Title            string                `json:"title" binding:"required,max=200"`
	Make             string                `json:"make" binding:"required,max=50"`
	Model            string                `json:"model" binding:"required,max=50"`
	Variant          string                `json:"variant" binding:"omitempty,max=50"`
	Year             int                   `json:"year" binding:"required" validate:"listingyear"`
	Price            float64               `json:"price" binding:"required,gte=0"`
	Mileage          int                   `json:"mileage" binding:"gte=0"`
	FuelType         string                `json:"fuel_type" binding:"omitempty,max=20"`
	Transmission     string                `json:"transmission" binding:"omitempty,oneof=Automatic Manual"`
	EngineCapacity   string                `json:"engine_capacity" binding:"omitempty,max=20"`
	Color            string                `json:"color" binding:"omitempty,max=30"`
	BodyType         string                `json:"body_type" binding:"omitempty,max=30"`
	City             string                `json:"city" binding:"omitempty,max=50"`
	RegistrationCity string                `json:"registration_city" binding:"omitempty,max=50"`
	Assembly         string                `json:"assembly" binding:"omitempty,oneof=Local Imported"`
	Condition        string                `json:"condition" binding:"omitempty,oneof=New Used"`
	Description      string                `json:"description" binding:"max=5000"`
	Features         []string              `json:"features"`
	Images           []models.ListingImage `json:"images"`
	ContactPhone     string                `json:"contact_phone" binding:"omitempty,max=20"`
}

// UpdateCarRequest is the car update payload; zero values leave fields
// untouched
type UpdateCarRequest struct {
	Title            string                `json:"title" binding:"omitempty,max=200"`
	Make             string                `json:"make" binding:"omitempty,max=50"`
	Model            string                `json:"model" binding:"omitempty,max=50"`
	Variant          string                `json:"variant" binding:"omitempty,max=50"`
	Year             int                   `json:"year" binding:"omitempty" validate:"omitempty,listingyear"`
	Price            *float64              `json:"price" binding:"omitempty,gte=0"`
	Mileage          *int                  `json:"mileage" binding:"omitempty"`
	FuelType         string                `json:"fuel_type" binding:"omitempty,max=20"`
	Transmission     string                `json:"transmission" binding:"omitempty,oneof=Automatic Manual"`
	EngineCapacity   string                `json:"engine_capacity" binding:"omitempty,max=20"`
	Color            string                `json:"color" binding:"omitempty,max=30"`
	BodyType         string                `json:"body_type" binding:"omitempty,max=30"`
	City             string                `json:"city" binding:"omitempty,max=50"`
	RegistrationCity string                `json:"registration_city" binding:"omitempty,max=50"`
	Assembly         string                `json:"assembly" binding:"omitempty,oneof=Local Imported"`
	Condition        string                `json:"condition" binding:"omitempty,oneof=New Used"`
	Description      string                `json:"description" binding:"omitempty,max=5000"`
	Features         []string              `json:"features"`
	Images           []models.ListingImage `json:"images"`
	ContactPhone     string                `json:"contact_phone" binding:"omitempty,max=20"`
}

// GetCars lists active cars with filtering, sorting and pagination
// @Summary List cars
// @Description Faceted car search: make, model, city, year/price/mileage ranges, fuel type and more
// @Tags cars
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Param make query string false "Comma-separated makes"
// @Param sort query string false "Sort field or alias (price_low, price_high, year_new, year_old, mileage)"
// @Success 200 {object} utils.PageResponse
// @Router /api/cars [get]
func (cc *CarController) GetCars(c *gin.Context) {
	q := query.Build(c.Request.URL.Query(), query.CarSchema())

	var total int64
	if err := q.Count(config.DB.Model(&models.Car{})).Count(&total).Error; err != nil {
		utils.InternalError(c, "Failed to count cars")
		return
	}

	var cars []models.Car
	if err := q.Paginate(config.DB.Preload("Seller")).Find(&cars).Error; err != nil {
		utils.InternalError(c, "Failed to get cars")
		return
	}

	utils.Paginate(c, gin.H{"cars": cars}, query.NewPageMeta(total, q.Page, q.Limit))
}

// GetMyCars lists the caller's own cars, inactive ones included
// @Summary List own cars
// @Tags cars
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.PageResponse
// @Router /api/cars/mine [get]
func (cc *CarController) GetMyCars(c *gin.Context) {
	values := c.Request.URL.Query()
	// seller scope is always the caller, never client-supplied
	values.Set("seller", c.GetString("user_id"))

	q := query.Build(values, query.CarSchema().OwnerView())

	var total int64
	q.Count(config.DB.Model(&models.Car{})).Count(&total)

	var cars []models.Car
	if err := q.Paginate(config.DB).Find(&cars).Error; err != nil {
		utils.InternalError(c, "Failed to get your cars")
		return
	}

	utils.Paginate(c, gin.H{"cars": cars}, query.NewPageMeta(total, q.Page, q.Limit))
}

// GetCar returns one car by id or slug and counts the view
// @Summary Get car details
// @Tags cars
// @Produce json
// @Param id path string true "Car id or slug"
// @Success 200 {object} models.Car
// @Router /api/cars/{id} [get]
func (cc *CarController) GetCar(c *gin.Context) {
	idOrSlug := c.Param("id")

	cacheKey := "car:" + idOrSlug
	if cc.redisClient != nil {
		cached, err := cc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var car models.Car
			if json.Unmarshal([]byte(cached), &car) == nil {
				queueViewIncrement(models.ItemKindCar, car.ID)
				utils.Success(c, car)
				return
			}
		}
	}

	car, err := cc.carService.GetBySlugOrID(idOrSlug)
	if err != nil {
		utils.NotFound(c, "Car not found")
		return
	}

	queueViewIncrement(models.ItemKindCar, car.ID)

	go func() {
		if cc.redisClient != nil {
			data, _ := json.Marshal(car)
			cc.redisClient.Set(ctx, cacheKey, data, time.Minute*10)
		}
	}()

	utils.Success(c, car)
}

// CreateCar publishes a new car listing for the caller
// @Summary Create car listing
// @Tags cars
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateCarRequest true "Car details"
// @Success 201 {object} models.Car
// @Router /api/cars [post]
func (cc *CarController) CreateCar(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := cc.validator.Validate(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.FuelType != "" && !models.IsValidFuelType(req.FuelType) {
		utils.BadRequest(c, "unknown fuel type")
		return
	}

	featuresJSON, _ := json.Marshal(req.Features)
	imagesJSON, _ := json.Marshal(req.Images)

	car := models.Car{
		Title:            req.Title,
		Make:             req.Make,
		Model:            req.Model,
		Variant:          req.Variant,
		Year:             req.Year,
		Price:            req.Price,
		Mileage:          req.Mileage,
		FuelType:         req.FuelType,
		Transmission:     req.Transmission,
		EngineCapacity:   req.EngineCapacity,
		Color:            req.Color,
		BodyType:         req.BodyType,
		City:             req.City,
		RegistrationCity: req.RegistrationCity,
		Assembly:         req.Assembly,
		Condition:        req.Condition,
		Description:      req.Description,
		Features:         string(featuresJSON),
		Images:           string(imagesJSON),
		ContactPhone:     req.ContactPhone,
		SellerID:         userID, // seller is always the caller
		IsActive:         true,
	}
	if car.BodyType == "" {
		car.BodyType = "Sedan"
	}
	if car.Assembly == "" {
		car.Assembly = "Local"
	}
	if car.Condition == "" {
		car.Condition = "Used"
	}

	if err := config.DB.Create(&car).Error; err != nil {
		utils.InternalError(c, "Failed to create car listing")
		return
	}

	utils.Created(c, car)
}

// UpdateCar modifies a listing; only the owner or an admin may do so
// @Summary Update car listing
// @Tags cars
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Car id"
// @Param request body UpdateCarRequest true "Fields to update"
// @Success 200 {object} models.Car
// @Router /api/cars/{id} [put]
func (cc *CarController) UpdateCar(c *gin.Context) {
	carID := c.Param("id")

	var car models.Car
	if err := config.DB.First(&car, "id = ?", carID).Error; err != nil {
		utils.NotFound(c, "Car not found")
		return
	}

	if !isOwnerOrAdmin(c, car.SellerID) {
		utils.Forbidden(c, "You don't have permission to update this listing")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := cc.validator.Validate(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" && req.Title != car.Title {
		updates["title"] = req.Title
		// the slug tracks the title but keeps the original creation time
		updates["slug"] = models.MakeListingSlug(req.Title, car.CreatedAt)
	}
	if req.Make != "" {
		updates["make"] = req.Make
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.Variant != "" {
		updates["variant"] = req.Variant
	}
	if req.Year != 0 {
		updates["year"] = req.Year
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.FuelType != "" {
		if !models.IsValidFuelType(req.FuelType) {
			utils.BadRequest(c, "unknown fuel type")
			return
		}
		updates["fuel_type"] = req.FuelType
	}
	if req.Transmission != "" {
		updates["transmission"] = req.Transmission
	}
	if req.EngineCapacity != "" {
		updates["engine_capacity"] = req.EngineCapacity
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.BodyType != "" {
		updates["body_type"] = req.BodyType
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.RegistrationCity != "" {
		updates["registration_city"] = req.RegistrationCity
	}
	if req.Assembly != "" {
		updates["assembly"] = req.Assembly
	}
	if req.Condition != "" {
		updates["condition"] = req.Condition
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Features != nil {
		featuresJSON, _ := json.Marshal(req.Features)
		updates["features"] = string(featuresJSON)
	}
	if req.Images != nil {
		imagesJSON, _ := json.Marshal(req.Images)
		updates["images"] = string(imagesJSON)
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}

	if err := config.DB.Model(&car).Updates(updates).Error; err != nil {
		utils.InternalError(c, "Failed to update car listing")
		return
	}

	cc.invalidateCache(&car)

	config.DB.Preload("Seller").First(&car, "id = ?", carID)
	utils.Success(c, car)
}

// ToggleCarActive soft-removes or restores a listing
// @Summary Toggle car active state
// @Tags cars
// @Produce json
// @Security Bearer
// @Param id path string true "Car id"
// @Success 200 {object} models.Car
// @Router /api/cars/{id}/active [put]
func (cc *CarController) ToggleCarActive(c *gin.Context) {
	carID := c.Param("id")

	var car models.Car
	if err := config.DB.First(&car, "id = ?", carID).Error; err != nil {
		utils.NotFound(c, "Car not found")
		return
	}

	if !isOwnerOrAdmin(c, car.SellerID) {
		utils.Forbidden(c, "You don't have permission to update this listing")
		return
	}

	if err := config.DB.Model(&car).Update("is_active", !car.IsActive).Error; err != nil {
		utils.InternalError(c, "Failed to update car listing")
		return
	}
	car.IsActive = !car.IsActive

	cc.invalidateCache(&car)

	utils.Success(c, car)
}

// DeleteCar removes a listing permanently
// @Summary Delete car listing
// @Tags cars
// @Produce json
// @Security Bearer
// @Param id path string true "Car id"
// @Success 200 {object} utils.Response
// @Router /api/cars/{id} [delete]
func (cc *CarController) DeleteCar(c *gin.Context) {
	carID := c.Param("id")

	var car models.Car
	if err := config.DB.First(&car, "id = ?", carID).Error; err != nil {
		utils.NotFound(c, "Car not found")
		return
	}

	if !isOwnerOrAdmin(c, car.SellerID) {
		utils.Forbidden(c, "You don't have permission to delete this listing")
		return
	}

	if err := config.DB.Delete(&car).Error; err != nil {
		utils.InternalError(c, "Failed to delete car listing")
		return
	}

	cc.invalidateCache(&car)

	utils.Success(c, gin.H{"deleted": carID})
}

// GetHotCars returns the most viewed active cars
// @Summary Hot cars
// @Tags cars
// @Produce json
// @Param limit query int false "Count" default(10)
// @Success 200 {object} utils.Response
// @Router /api/cars/hot [get]
func (cc *CarController) GetHotCars(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	cars, svcErr := cc.carService.GetHotCars(limit)
	if svcErr != nil {
		utils.InternalError(c, "Failed to get hot cars")
		return
	}

	utils.Success(c, gin.H{"cars": cars})
}

// GetRecommendations suggests cars based on the caller's favorites
// @Summary Recommended cars
// @Tags cars
// @Produce json
// @Security Bearer
// @Param limit query int false "Count" default(10)
// @Success 200 {object} utils.Response
// @Router /api/cars/recommendations [get]
func (cc *CarController) GetRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	cars, svcErr := cc.carService.GetRecommendations(userID, limit)
	if svcErr != nil {
		utils.InternalError(c, "Failed to get recommendations")
		return
	}

	utils.Success(c, gin.H{"cars": cars})
}

// invalidateCache drops the detail cache entries for a car
func (cc *CarController) invalidateCache(car *models.Car) {
	go func() {
		if cc.redisClient != nil {
			cc.redisClient.Del(ctx, "car:"+car.ID, "car:"+car.Slug)
		}
	}()
}
