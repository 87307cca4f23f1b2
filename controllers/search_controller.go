package controllers

import (
	"encoding/json"
	"net/url"
	"strconv"
	"sync"
	"time"

	"motormandi_go/config"
	"motormandi_go/models"
	"motormandi_go/query"
	"motormandi_go/services"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SearchController handles cross-entity search
type SearchController struct {
	redisClient *redis.Client
}

// NewSearchController creates a search controller instance
func NewSearchController() *SearchController {
	return &SearchController{
		redisClient: getRedis(),
	}
}

// SearchResult is the global search response body
type SearchResult struct {
	Cars  []models.Car  `json:"cars,omitempty"`
	Parts []models.Part `json:"parts,omitempty"`
	Total int           `json:"total"`
	Query string        `json:"query"`
}

// GlobalSearch searches cars and parts concurrently
// @Summary Global search
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Param limit query int false "Per-kind limit" default(20)
// @Success 200 {object} SearchResult
// @Router /api/search [get]
func (sc *SearchController) GlobalSearch(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		utils.BadRequest(c, "Search query is required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	cacheKey := "search:global:" + term + ":" + strconv.Itoa(limit)
	if sc.redisClient != nil {
		cached, err := sc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var result SearchResult
			if json.Unmarshal([]byte(cached), &result) == nil {
				utils.Success(c, result)
				return
			}
		}
	}

	go services.RecordSearch(term)

	// The query builder produces the same filter used by the list
	// endpoints, so search results respect the active-only rule
	values := url.Values{}
	values.Set("search", term)
	carQuery := query.Build(values, query.CarSchema())
	partQuery := query.Build(values, query.PartSchema())

	var wg sync.WaitGroup
	var mu sync.Mutex

	result := SearchResult{Query: term}

	wg.Add(1)
	go func() {
		defer wg.Done()

		var cars []models.Car
		carQuery.Apply(config.DB.Preload("Seller")).Limit(limit).Find(&cars)

		mu.Lock()
		result.Cars = cars
		result.Total += len(cars)
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		var parts []models.Part
		partQuery.Apply(config.DB.Preload("Seller")).Limit(limit).Find(&parts)

		mu.Lock()
		result.Parts = parts
		result.Total += len(parts)
		mu.Unlock()
	}()

	wg.Wait()

	go func() {
		if sc.redisClient != nil {
			data, _ := json.Marshal(result)
			sc.redisClient.Set(ctx, cacheKey, data, time.Minute*5)
		}
	}()

	utils.Success(c, result)
}

// GetHotSearchKeywords returns the most searched terms
// @Summary Hot search keywords
// @Tags search
// @Produce json
// @Param limit query int false "Count" default(10)
// @Success 200 {object} utils.Response
// @Router /api/search/hot [get]
func (sc *SearchController) GetHotSearchKeywords(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	keywords, err := services.HotSearchKeywords(limit)
	if err != nil {
		utils.InternalError(c, "Failed to get hot search keywords")
		return
	}

	utils.Success(c, gin.H{"keywords": keywords})
}

// GetSuggestions returns title and make prefix completions
// @Summary Search suggestions
// @Tags search
// @Produce json
// @Param q query string true "Prefix"
// @Success 200 {object} utils.Response
// @Router /api/search/suggestions [get]
func (sc *SearchController) GetSuggestions(c *gin.Context) {
	term := c.Query("q")
	if len(term) < 2 {
		utils.BadRequest(c, "Query must be at least 2 characters")
		return
	}

	cacheKey := "search:suggestions:" + term
	if sc.redisClient != nil {
		cached, err := sc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var suggestions []string
			if json.Unmarshal([]byte(cached), &suggestions) == nil {
				utils.Success(c, gin.H{"suggestions": suggestions})
				return
			}
		}
	}

	prefix := query.EscapeLike(term) + "%"

	var wg sync.WaitGroup
	var mu sync.Mutex
	suggestions := []string{}

	wg.Add(1)
	go func() {
		defer wg.Done()

		var titles []string
		config.DB.Model(&models.Car{}).
			Where("title LIKE ? AND is_active = ?", prefix, true).
			Limit(5).
			Pluck("title", &titles)

		mu.Lock()
		suggestions = append(suggestions, titles...)
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		var makes []string
		config.DB.Model(&models.Car{}).
			Where("make LIKE ? AND is_active = ?", prefix, true).
			Group("make").
			Limit(5).
			Pluck("make", &makes)

		mu.Lock()
		suggestions = append(suggestions, makes...)
		mu.Unlock()
	}()

	wg.Wait()

	// Dedupe while keeping insertion order
	seen := make(map[string]bool)
	var result []string
	for _, s := range suggestions {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	go func() {
		if sc.redisClient != nil {
			data, _ := json.Marshal(result)
			sc.redisClient.Set(ctx, cacheKey, data, time.Minute*30)
		}
	}()

	utils.Success(c, gin.H{"suggestions": result})
}
