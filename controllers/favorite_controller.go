package controllers

import (
	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
)

// FavoriteController handles saved listings
type FavoriteController struct{}

// NewFavoriteController creates a favorite controller instance
func NewFavoriteController() *FavoriteController {
	return &FavoriteController{}
}

// ToggleFavorite saves or unsaves a listing for the caller
// @Summary Toggle favorite
// @Tags favorites
// @Produce json
// @Security Bearer
// @Param kind path string true "Listing kind (car or part)"
// @Param id path string true "Listing id"
// @Success 200 {object} utils.Response
// @Router /api/favorites/{kind}/{id} [post]
func (fc *FavoriteController) ToggleFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	kind := c.Param("kind")
	itemID := c.Param("id")

	if kind != models.ItemKindCar && kind != models.ItemKindPart {
		utils.BadRequest(c, "kind must be car or part")
		return
	}

	// The listing must exist before it can be favorited
	var exists int64
	switch kind {
	case models.ItemKindCar:
		config.DB.Model(&models.Car{}).Where("id = ?", itemID).Count(&exists)
	case models.ItemKindPart:
		config.DB.Model(&models.Part{}).Where("id = ?", itemID).Count(&exists)
	}
	if exists == 0 {
		utils.NotFound(c, "Listing not found")
		return
	}

	var favorite models.Favorite
	err := config.DB.Where("user_id = ? AND item_kind = ? AND item_id = ?",
		userID, kind, itemID).First(&favorite).Error

	if err == nil {
		if err := config.DB.Delete(&favorite).Error; err != nil {
			utils.InternalError(c, "Failed to remove favorite")
			return
		}
		go adjustFavoriteCount(kind, itemID, -1)
		utils.Success(c, gin.H{"favorited": false})
		return
	}

	favorite = models.Favorite{
		UserID:   userID,
		ItemKind: kind,
		ItemID:   itemID,
	}

	if err := config.DB.Create(&favorite).Error; err != nil {
		utils.InternalError(c, "Failed to add favorite")
		return
	}

	go adjustFavoriteCount(kind, itemID, 1)

	utils.Success(c, gin.H{"favorited": true})
}

// adjustFavoriteCount keeps the denormalized favorites counter roughly in
// step with the favorites table; a lost update is acceptable
func adjustFavoriteCount(kind, itemID string, delta int) {
	switch kind {
	case models.ItemKindCar:
		config.DB.Exec("UPDATE cars SET favorites = GREATEST(favorites + ?, 0) WHERE id = ?", delta, itemID)
	case models.ItemKindPart:
		config.DB.Exec("UPDATE parts SET favorites = GREATEST(favorites + ?, 0) WHERE id = ?", delta, itemID)
	}
}

// GetFavorites lists the caller's saved listings
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /api/favorites [get]
func (fc *FavoriteController) GetFavorites(c *gin.Context) {
	userID := c.GetString("user_id")

	var favorites []models.Favorite
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		utils.InternalError(c, "Failed to get favorites")
		return
	}

	carIDs := make([]string, 0)
	partIDs := make([]string, 0)
	for _, favorite := range favorites {
		switch favorite.ItemKind {
		case models.ItemKindCar:
			carIDs = append(carIDs, favorite.ItemID)
		case models.ItemKindPart:
			partIDs = append(partIDs, favorite.ItemID)
		}
	}

	var cars []models.Car
	if len(carIDs) > 0 {
		config.DB.Where("id IN ?", carIDs).Find(&cars)
	}

	var parts []models.Part
	if len(partIDs) > 0 {
		config.DB.Where("id IN ?", partIDs).Find(&parts)
	}

	utils.Success(c, gin.H{
		"favorites": favorites,
		"cars":      cars,
		"parts":     parts,
	})
}
