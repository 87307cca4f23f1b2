package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motormandi_go/config"
	"motormandi_go/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var redisCtx = context.Background()

// AuthConfig holds abuse-protection settings
type AuthConfig struct {
	MaxLoginAttempts     int
	LoginBlockDuration   time.Duration
	RegisterLimitPerHour int
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	jwtService *config.JWTService
	authConfig *AuthConfig
}

// NewAuthService creates an auth service instance
func NewAuthService() *AuthService {
	return &AuthService{
		jwtService: config.GetJWTService(),
		authConfig: &AuthConfig{
			MaxLoginAttempts:     5,
			LoginBlockDuration:   15 * time.Minute,
			RegisterLimitPerHour: 3,
		},
	}
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" validate:"required,min=3,max=50,username"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100" validate:"required,min=8,max=100,password"`
	Phone    string `json:"phone" binding:"omitempty,max=20" validate:"omitempty,phone"`
	City     string `json:"city" binding:"omitempty,max=50" validate:"omitempty,max=50"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account and issues a token
func (as *AuthService) Register(req *RegisterRequest, clientIP string) (*models.User, string, error) {
	var existingUser models.User
	if err := config.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		return nil, "", errors.New("username already exists")
	}
	if err := config.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, "", errors.New("email already exists")
	}

	// Per-IP registration throttle
	if config.RedisClient != nil {
		registerLimitKey := fmt.Sprintf("register:limit:%s", clientIP)
		count, _ := config.RedisClient.Get(redisCtx, registerLimitKey).Int64()
		if count >= int64(as.authConfig.RegisterLimitPerHour) {
			return nil, "", errors.New("too many registration attempts, please try again later")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		City:     req.City,
		Role:     models.RoleUser,
		Status:   1,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if config.RedisClient != nil {
		registerLimitKey := fmt.Sprintf("register:limit:%s", clientIP)
		config.RedisClient.Incr(redisCtx, registerLimitKey)
		config.RedisClient.Expire(redisCtx, registerLimitKey, time.Hour)
	}

	token, err := as.jwtService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Registration event stream for analytics; best effort
	go func() {
		if config.RedisClient != nil {
			config.RedisClient.Incr(redisCtx, "stats:register:total")
			config.RedisClient.XAdd(redisCtx, &redis.XAddArgs{
				Stream: "user_events",
				Values: map[string]interface{}{
					"event":     "register",
					"user_id":   user.ID,
					"username":  user.Username,
					"ip":        clientIP,
					"timestamp": time.Now().Unix(),
				},
			})
		}
	}()

	return &user, token, nil
}

// Login verifies credentials and issues a token
func (as *AuthService) Login(req *LoginRequest, clientIP string) (*models.User, string, error) {
	// Per-email+IP attempt throttle
	loginLimitKey := fmt.Sprintf("login:limit:%s:%s", req.Email, clientIP)
	if config.RedisClient != nil {
		attempts, _ := config.RedisClient.Get(redisCtx, loginLimitKey).Int64()
		if attempts >= int64(as.authConfig.MaxLoginAttempts) {
			return nil, "", fmt.Errorf("too many login attempts, please try again in %v", as.authConfig.LoginBlockDuration)
		}
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		as.recordLoginFailure(loginLimitKey)
		return nil, "", errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		as.recordLoginFailure(loginLimitKey)
		return nil, "", errors.New("invalid email or password")
	}

	if user.Status == 0 {
		return nil, "", errors.New("account is disabled, please contact support")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"last_login":  &now,
		"login_count": user.LoginCount + 1,
	}
	// Login bookkeeping must not fail the login itself
	config.DB.Model(&user).Updates(updates)

	if config.RedisClient != nil {
		config.RedisClient.Del(redisCtx, loginLimitKey)
	}

	token, err := as.jwtService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Track active users for online statistics
	go func() {
		if config.RedisClient != nil {
			config.RedisClient.ZAdd(redisCtx, "users:active", redis.Z{
				Score:  float64(time.Now().Unix()),
				Member: user.ID,
			})
			config.RedisClient.Expire(redisCtx, "users:active", 7*24*time.Hour)
		}
	}()

	return &user, token, nil
}

// RefreshToken rotates a token, blacklisting the old one
func (as *AuthService) RefreshToken(tokenString string) (string, *config.Claims, error) {
	if as.isBlacklisted(tokenString) {
		return "", nil, errors.New("token has been revoked")
	}

	claims, err := as.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", nil, err
	}

	as.blacklist(tokenString, time.Until(claims.ExpiresAt.Time))

	newToken, err := as.jwtService.GenerateToken(claims.UserID, claims.Username, claims.Email, claims.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate new token: %w", err)
	}

	return newToken, claims, nil
}

// Logout revokes a token until its natural expiry
func (as *AuthService) Logout(tokenString string) error {
	claims, err := as.jwtService.ValidateToken(tokenString)
	if err != nil {
		// Already invalid tokens need no blacklisting
		return nil
	}
	as.blacklist(tokenString, time.Until(claims.ExpiresAt.Time))
	return nil
}

func (as *AuthService) recordLoginFailure(loginLimitKey string) {
	if config.RedisClient != nil {
		config.RedisClient.Incr(redisCtx, loginLimitKey)
		config.RedisClient.Expire(redisCtx, loginLimitKey, as.authConfig.LoginBlockDuration)
	}
}

func (as *AuthService) isBlacklisted(tokenString string) bool {
	if config.RedisClient == nil {
		return false
	}
	exists, _ := config.RedisClient.Exists(redisCtx, fmt.Sprintf("token:blacklist:%s", tokenString)).Result()
	return exists > 0
}

func (as *AuthService) blacklist(tokenString string, ttl time.Duration) {
	if config.RedisClient != nil && ttl > 0 {
		config.RedisClient.Set(redisCtx, fmt.Sprintf("token:blacklist:%s", tokenString), "1", ttl)
	}
}
