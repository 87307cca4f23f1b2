package controllers

import (
	"context"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// getRedis returns the shared Redis client (may be nil when disabled)
func getRedis() *redis.Client {
	return config.GetRedisClient()
}

// StatUpdate is one queued view-counter increment
type StatUpdate struct {
	Kind string // "car" or "part"
	ID   string
}

// statsQueue carries best-effort view increments; a full queue drops the
// update rather than blocking the response
var statsQueue = make(chan StatUpdate, 1000)

func init() {
	startStatsWorkers()
}

// startStatsWorkers launches the view-counter worker pool
func startStatsWorkers() {
	workerCount := 5

	for i := 0; i < workerCount; i++ {
		go func() {
			carService := services.NewCarService()
			for stat := range statsQueue {
				switch stat.Kind {
				case models.ItemKindCar:
					config.DB.Exec("UPDATE cars SET views = views + 1 WHERE id = ?", stat.ID)
				case models.ItemKindPart:
					config.DB.Exec("UPDATE parts SET views = views + 1 WHERE id = ?", stat.ID)
				}
				carService.RecordView(stat.Kind, stat.ID)
			}
		}()
	}
}

// queueViewIncrement records one detail-view fetch
func queueViewIncrement(kind, id string) {
	select {
	case statsQueue <- StatUpdate{Kind: kind, ID: id}:
	default:
	}
}

// isOwnerOrAdmin checks the listing mutation permission: the seller
// themselves or an admin
func isOwnerOrAdmin(c *gin.Context, sellerID string) bool {
	return c.GetString("user_id") == sellerID || c.GetString("role") == models.RoleAdmin
}
