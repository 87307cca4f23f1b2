package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the global Redis client instance
var RedisClient *redis.Client

// InitializeRedis creates and pings the Redis client. With REDIS_ENABLED=false
// the client stays nil and callers fall back to their database paths.
func InitializeRedis() error {
	if !GetServerConfig().RedisEnabled {
		log.Println("Redis disabled, running without caching and rankings")
		return nil
	}

	redisAddr := GetEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	db := GetEnvInt("REDIS_DB", 0)

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     redisPassword,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Redis client initialized successfully")
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// GetRedisClient returns the shared Redis client for other packages
func GetRedisClient() *redis.Client {
	return RedisClient
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	RedisEnabled bool
}

// GetServerConfig reads server settings from the environment
func GetServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         GetEnv("SERVER_PORT", "8080"),
		Mode:         GetEnv("GIN_MODE", "debug"),
		ReadTimeout:  30,
		WriteTimeout: 30,
		RedisEnabled: GetEnvBool("REDIS_ENABLED", true),
	}
}

// SetupRouter builds the gin engine with base middleware and health check
func SetupRouter() *gin.Engine {
	serverConfig := GetServerConfig()

	gin.SetMode(serverConfig.Mode)

	r := gin.New()

	r.Use(gin.Recovery())

	// Health check covering database and Redis state
	r.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"message": "Server is running",
		}

		if DB != nil {
			sqlDB, err := DB.DB()
			if err == nil {
				if err := sqlDB.Ping(); err == nil {
					health["database"] = "connected"
				} else {
					health["database"] = "disconnected"
				}
			} else {
				health["database"] = "error"
			}
		} else {
			health["database"] = "not initialized"
		}

		if RedisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := RedisClient.Ping(ctx).Err(); err == nil {
				health["redis"] = "connected"
			} else {
				health["redis"] = "disconnected"
			}
		} else {
			health["redis"] = "not initialized"
		}

		c.JSON(200, health)
	})

	return r
}

// StartServer runs the HTTP server
func StartServer(r *gin.Engine) error {
	serverConfig := GetServerConfig()

	addr := fmt.Sprintf(":%s", serverConfig.Port)
	log.Printf("🚀 Server starting on port %s in %s mode", serverConfig.Port, serverConfig.Mode)
	log.Printf("❤️  Health check: http://localhost%s/health", addr)

	if err := r.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
