package services

import (
	"errors"
	"fmt"
	"time"

	"motormandi_go/config"
	"motormandi_go/models"
)

// CarService holds car-listing business logic beyond plain CRUD
type CarService struct{}

// NewCarService creates a car service instance
func NewCarService() *CarService {
	return &CarService{}
}

// GetBySlugOrID loads an active-or-not car by slug, falling back to id
func (cs *CarService) GetBySlugOrID(idOrSlug string) (*models.Car, error) {
	var car models.Car
	err := config.DB.Preload("Seller").Where("slug = ?", idOrSlug).First(&car).Error
	if err != nil {
		err = config.DB.Preload("Seller").First(&car, "id = ?", idOrSlug).Error
	}
	if err != nil {
		return nil, errors.New("car not found")
	}
	return &car, nil
}

// GetHotCars returns the most viewed cars from the Redis ranking, falling
// back to the view counter column when Redis is unavailable
func (cs *CarService) GetHotCars(limit int) ([]models.Car, error) {
	var cars []models.Car

	if config.RedisClient != nil {
		ids, err := config.RedisClient.ZRevRange(redisCtx, "rank:car:views", 0, int64(limit-1)).Result()
		if err == nil && len(ids) > 0 {
			if err := config.DB.Preload("Seller").
				Where("is_active = ?", true).
				Where("id IN ?", ids).
				Find(&cars).Error; err == nil && len(cars) > 0 {
				return cars, nil
			}
		}
	}

	if err := config.DB.Preload("Seller").
		Where("is_active = ?", true).
		Order("views DESC").
		Limit(limit).
		Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to load hot cars: %w", err)
	}
	return cars, nil
}

// GetRecommendations suggests active cars similar to the user's favorites
// (same make or city), padding with recent listings when needed
func (cs *CarService) GetRecommendations(userID string, limit int) ([]models.Car, error) {
	var favoriteCarIDs []string
	config.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND item_kind = ?", userID, models.ItemKindCar).
		Pluck("item_id", &favoriteCarIDs)

	var cars []models.Car

	if len(favoriteCarIDs) > 0 {
		var makes []string
		config.DB.Model(&models.Car{}).
			Where("id IN ?", favoriteCarIDs).
			Group("make").
			Pluck("make", &makes)

		if len(makes) > 0 {
			config.DB.Preload("Seller").
				Where("is_active = ?", true).
				Where("make IN ?", makes).
				Where("id NOT IN ?", favoriteCarIDs).
				Order("created_at DESC").
				Limit(limit).
				Find(&cars)
		}
	}

	if len(cars) < limit {
		var recent []models.Car
		exclude := favoriteCarIDs
		for _, car := range cars {
			exclude = append(exclude, car.ID)
		}
		q := config.DB.Preload("Seller").Where("is_active = ?", true)
		if len(exclude) > 0 {
			q = q.Where("id NOT IN ?", exclude)
		}
		if err := q.Order("created_at DESC").
			Limit(limit - len(cars)).
			Find(&recent).Error; err == nil {
			cars = append(cars, recent...)
		}
	}

	return cars, nil
}

// RecordView bumps the detail-view counter for ranking purposes. The
// database increment happens in the controller's stats queue; this only
// maintains the Redis leaderboard.
func (cs *CarService) RecordView(kind, id string) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.ZIncrBy(redisCtx, "rank:"+kind+":views", 1, id)
}

// RecordSearch tracks a search keyword in the hot-keyword ranking
func RecordSearch(term string) {
	if config.RedisClient == nil || term == "" {
		return
	}
	config.RedisClient.ZIncrBy(redisCtx, "search:hot", 1, term)
	config.RedisClient.Expire(redisCtx, "search:hot", time.Hour*24)
}

// HotSearchKeywords returns the top searched terms
func HotSearchKeywords(limit int) ([]string, error) {
	if config.RedisClient == nil {
		return []string{}, nil
	}
	return config.RedisClient.ZRevRange(redisCtx, "search:hot", 0, int64(limit-1)).Result()
}
