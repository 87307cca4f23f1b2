package controllers

import (
	"encoding/json"
	"time"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/query"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// PartController handles spare-part listing endpoints
type PartController struct {
	redisClient *redis.Client
}

// NewPartController creates a part controller instance
func NewPartController() *PartController {
	return &PartController{
		redisClient: getRedis(),
	}
}

// CreatePartRequest is the part creation payload
type CreatePartRequest struct {
	Title            string                `json:"title" binding:"required,max=200"`
	Category         string                `json:"category" binding:"required,max=30"`
	Condition        string                `json:"condition" binding:"omitempty,oneof=New Used"`
	Price            float64               `json:"price" binding:"required,gte=0"`
	CompatibleMakes  []string              `json:"compatible_makes"`
	CompatibleModels []string              `json:"compatible_models"`
	Description      string                `json:"description" binding:"max=3000"`
	Images           []models.ListingImage `json:"images"`
	City             string                `json:"city" binding:"omitempty,max=50"`
	ContactPhone     string                `json:"contact_phone" binding:"omitempty,max=20"`
}

// UpdatePartRequest is the part update payload
type UpdatePartRequest struct {
	Title            string                `json:"title" binding:"omitempty,max=200"`
	Category         string                `json:"category" binding:"omitempty,max=30"`
	Condition        string                `json:"condition" binding:"omitempty,oneof=New Used"`
	Price            *float64              `json:"price" binding:"omitempty,gte=0"`
	CompatibleMakes  []string              `json:"compatible_makes"`
	CompatibleModels []string              `json:"compatible_models"`
	Description      string                `json:"description" binding:"omitempty,max=3000"`
	Images           []models.ListingImage `json:"images"`
	City             string                `json:"city" binding:"omitempty,max=50"`
	ContactPhone     string                `json:"contact_phone" binding:"omitempty,max=20"`
}

// GetParts lists active parts with filtering, sorting and pagination
// @Summary List parts
// @Description Faceted part search: category, city, condition, price range
// @Tags parts
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Param category query string false "Comma-separated categories"
// @Success 200 {object} utils.PageResponse
// @Router /api/parts [get]
func (pc *PartController) GetParts(c *gin.Context) {
	q := query.Build(c.Request.URL.Query(), query.PartSchema())

	var total int64
	if err := q.Count(config.DB.Model(&models.Part{})).Count(&total).Error; err != nil {
		utils.InternalError(c, "Failed to count parts")
		return
	}

	var parts []models.Part
	if err := q.Paginate(config.DB.Preload("Seller")).Find(&parts).Error; err != nil {
		utils.InternalError(c, "Failed to get parts")
		return
	}

	utils.Paginate(c, gin.H{"parts": parts}, query.NewPageMeta(total, q.Page, q.Limit))
}

// GetMyParts lists the caller's own parts, inactive ones included
// @Summary List own parts
// @Tags parts
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.PageResponse
// @Router /api/parts/mine [get]
func (pc *PartController) GetMyParts(c *gin.Context) {
	values := c.Request.URL.Query()
	values.Set("seller", c.GetString("user_id"))

	q := query.Build(values, query.PartSchema().OwnerView())

	var total int64
	q.Count(config.DB.Model(&models.Part{})).Count(&total)

	var parts []models.Part
	if err := q.Paginate(config.DB).Find(&parts).Error; err != nil {
		utils.InternalError(c, "Failed to get your parts")
		return
	}

	utils.Paginate(c, gin.H{"parts": parts}, query.NewPageMeta(total, q.Page, q.Limit))
}

// GetPart returns one part and counts the view
// @Summary Get part details
// @Tags parts
// @Produce json
// @Param id path string true "Part id"
// @Success 200 {object} models.Part
// @Router /api/parts/{id} [get]
func (pc *PartController) GetPart(c *gin.Context) {
	partID := c.Param("id")

	cacheKey := "part:" + partID
	if pc.redisClient != nil {
		cached, err := pc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var part models.Part
			if json.Unmarshal([]byte(cached), &part) == nil {
				queueViewIncrement(models.ItemKindPart, part.ID)
				utils.Success(c, part)
				return
			}
		}
	}

	var part models.Part
	if err := config.DB.Preload("Seller").First(&part, "id = ?", partID).Error; err != nil {
		utils.NotFound(c, "Part not found")
		return
	}

	queueViewIncrement(models.ItemKindPart, part.ID)

	go func() {
		if pc.redisClient != nil {
			data, _ := json.Marshal(part)
			pc.redisClient.Set(ctx, cacheKey, data, time.Minute*10)
		}
	}()

	utils.Success(c, part)
}

// CreatePart publishes a new part listing for the caller
// @Summary Create part listing
// @Tags parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreatePartRequest true "Part details"
// @Success 201 {object} models.Part
// @Router /api/parts [post]
func (pc *PartController) CreatePart(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if !models.IsValidPartCategory(req.Category) {
		utils.BadRequest(c, "unknown part category")
		return
	}

	makesJSON, _ := json.Marshal(req.CompatibleMakes)
	modelsJSON, _ := json.Marshal(req.CompatibleModels)
	imagesJSON, _ := json.Marshal(req.Images)

	part := models.Part{
		Title:            req.Title,
		Category:         req.Category,
		Condition:        req.Condition,
		Price:            req.Price,
		CompatibleMakes:  string(makesJSON),
		CompatibleModels: string(modelsJSON),
		Description:      req.Description,
		Images:           string(imagesJSON),
		City:             req.City,
		ContactPhone:     req.ContactPhone,
		SellerID:         userID, // seller is always the caller
		IsActive:         true,
	}
	if part.Condition == "" {
		part.Condition = "Used"
	}

	if err := config.DB.Create(&part).Error; err != nil {
		utils.InternalError(c, "Failed to create part listing")
		return
	}

	utils.Created(c, part)
}

// UpdatePart modifies a listing; only the owner or an admin may do so
// @Summary Update part listing
// @Tags parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Part id"
// @Param request body UpdatePartRequest true "Fields to update"
// @Success 200 {object} models.Part
// @Router /api/parts/{id} [put]
func (pc *PartController) UpdatePart(c *gin.Context) {
	partID := c.Param("id")

	var part models.Part
	if err := config.DB.First(&part, "id = ?", partID).Error; err != nil {
		utils.NotFound(c, "Part not found")
		return
	}

	if !isOwnerOrAdmin(c, part.SellerID) {
		utils.Forbidden(c, "You don't have permission to update this listing")
		return
	}

	var req UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Category != "" {
		if !models.IsValidPartCategory(req.Category) {
			utils.BadRequest(c, "unknown part category")
			return
		}
		updates["category"] = req.Category
	}
	if req.Condition != "" {
		updates["condition"] = req.Condition
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CompatibleMakes != nil {
		makesJSON, _ := json.Marshal(req.CompatibleMakes)
		updates["compatible_makes"] = string(makesJSON)
	}
	if req.CompatibleModels != nil {
		modelsJSON, _ := json.Marshal(req.CompatibleModels)
		updates["compatible_models"] = string(modelsJSON)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Images != nil {
		imagesJSON, _ := json.Marshal(req.Images)
		updates["images"] = string(imagesJSON)
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}

	if err := config.DB.Model(&part).Updates(updates).Error; err != nil {
		utils.InternalError(c, "Failed to update part listing")
		return
	}

	pc.invalidateCache(partID)

	config.DB.Preload("Seller").First(&part, "id = ?", partID)
	utils.Success(c, part)
}

// TogglePartActive soft-removes or restores a listing
// @Summary Toggle part active state
// @Tags parts
// @Produce json
// @Security Bearer
// @Param id path string true "Part id"
// @Success 200 {object} models.Part
// @Router /api/parts/{id}/active [put]
func (pc *PartController) TogglePartActive(c *gin.Context) {
	partID := c.Param("id")

	var part models.Part
	if err := config.DB.First(&part, "id = ?", partID).Error; err != nil {
		utils.NotFound(c, "Part not found")
		return
	}

	if !isOwnerOrAdmin(c, part.SellerID) {
		utils.Forbidden(c, "You don't have permission to update this listing")
		return
	}

	if err := config.DB.Model(&part).Update("is_active", !part.IsActive).Error; err != nil {
		utils.InternalError(c, "Failed to update part listing")
		return
	}
	part.IsActive = !part.IsActive

	pc.invalidateCache(partID)

	utils.Success(c, part)
}

// DeletePart removes a listing permanently
// @Summary Delete part listing
// @Tags parts
// @Produce json
// @Security Bearer
// @Param id path string true "Part id"
// @Success 200 {object} utils.Response
// @Router /api/parts/{id} [delete]
func (pc *PartController) DeletePart(c *gin.Context) {
	partID := c.Param("id")

	var part models.Part
	if err := config.DB.First(&part, "id = ?", partID).Error; err != nil {
		utils.NotFound(c, "Part not found")
		return
	}

	if !isOwnerOrAdmin(c, part.SellerID) {
		utils.Forbidden(c, "You don't have permission to delete this listing")
		return
	}

	if err := config.DB.Delete(&part).Error; err != nil {
		utils.InternalError(c, "Failed to delete part listing")
		return
	}

	pc.invalidateCache(partID)

	utils.Success(c, gin.H{"deleted": partID})
}

// invalidateCache drops the detail cache entry for a part
func (pc *PartController) invalidateCache(partID string) {
	go func() {
		if pc.redisClient != nil {
			pc.redisClient.Del(ctx, "part:"+partID)
		}
	}()
}
