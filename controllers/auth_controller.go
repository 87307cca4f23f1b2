package controllers

import (
	"strings"

	"motormandi_go/services"
	"motormandi_go/utils"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and token lifecycle
type AuthController struct {
	authService *services.AuthService
	validator   *utils.Validator
}

// NewAuthController creates an auth controller instance
func NewAuthController() *AuthController {
	return &AuthController{
		authService: services.NewAuthService(),
		validator:   utils.NewValidator(),
	}
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register creates a new account
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Account details"
// @Success 200 {object} utils.Response
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Custom username/password/phone rules live on the shared validator
	if err := ac.validator.Validate(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, token, err := ac.authService.Register(&req, c.ClientIP())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Login exchanges credentials for a token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} utils.Response
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, token, err := ac.authService.Login(&req, c.ClientIP())
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
			"avatar":   user.Avatar,
		},
	})
}

// RefreshToken rotates a near-expiry token
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Current token"
// @Success 200 {object} utils.Response
// @Router /api/auth/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	newToken, claims, err := ac.authService.RefreshToken(req.Token)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"token": newToken,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
			"role":     claims.Role,
		},
	})
}

// Logout revokes the presented token
// @Summary Logout
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /api/auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		utils.BadRequest(c, "No token provided")
		return
	}

	if err := ac.authService.Logout(tokenString); err != nil {
		utils.InternalError(c, "Failed to log out")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
