package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"motormandi_go/config"
	"motormandi_go/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity (user_id, username, role) in the gin context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40100, "message": "Authorization token is required"})
			return
		}

		// Revoked tokens live in the Redis blacklist until they expire
		if config.RedisClient != nil {
			blacklistKey := fmt.Sprintf("token:blacklist:%s", tokenString)
			exists, _ := config.RedisClient.Exists(context.Background(), blacklistKey).Result()
			if exists > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40100, "message": "Token has been revoked"})
				return
			}
		}

		claims, err := config.GetJWTService().ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40100, "message": "Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware requires the admin role; must run after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 40300, "message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// extractToken reads the token from the Authorization header or, for
// websocket upgrades, the token query parameter
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
