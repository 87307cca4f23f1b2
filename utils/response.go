package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"motormandi_go/config"
	"motormandi_go/query"

	"github.com/gin-gonic/gin"
)

// Response is the unified JSON envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PageResponse is the envelope for paginated listing results
type PageResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    query.PageMeta `json:"meta"`
}

// Business status codes
const (
	CodeSuccess             = 20000
	CodeError               = 40000
	CodeUnauthorized        = 40100
	CodeForbidden           = 40300
	CodeNotFound            = 40400
	CodeValidationError     = 42200
	CodeInternalServerError = 50000
)

var codeMessages = map[int]string{
	CodeSuccess:             "Success",
	CodeError:               "Request failed",
	CodeUnauthorized:        "Unauthorized, please log in again",
	CodeForbidden:           "Access denied",
	CodeNotFound:            "Resource not found",
	CodeValidationError:     "Validation failed",
	CodeInternalServerError: "Internal server error",
}

// GetCodeMessage returns the default message for a business code
func GetCodeMessage(code int) string {
	if msg, exists := codeMessages[code]; exists {
		return msg
	}
	return "Unknown status"
}

// Success writes a 200 response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: GetCodeMessage(CodeSuccess),
		Data:    data,
	})
}

// Created writes a 201 response with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: GetCodeMessage(CodeSuccess),
		Data:    data,
	})
}

// BadRequest writes a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = GetCodeMessage(CodeError)
	}
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeError,
		Message: message,
	})
}

// Unauthorized writes a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = GetCodeMessage(CodeUnauthorized)
	}
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

// Forbidden writes a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = GetCodeMessage(CodeForbidden)
	}
	c.JSON(http.StatusForbidden, Response{
		Code:    CodeForbidden,
		Message: message,
	})
}

// NotFound writes a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = GetCodeMessage(CodeNotFound)
	}
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeNotFound,
		Message: message,
	})
}

// InternalError writes a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = GetCodeMessage(CodeInternalServerError)
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    CodeInternalServerError,
		Message: message,
	})
}

// Paginate writes a 200 response with pagination metadata
func Paginate(c *gin.Context, data interface{}, meta query.PageMeta) {
	c.JSON(http.StatusOK, PageResponse{
		Code:    CodeSuccess,
		Message: GetCodeMessage(CodeSuccess),
		Data:    data,
		Meta:    meta,
	})
}

// APIRateLimit enforces a fixed-window rate limit via Redis. Returns true
// when the request is allowed; requests pass when Redis is unavailable.
func APIRateLimit(c *gin.Context, userID string, limit int, duration time.Duration) bool {
	if config.RedisClient == nil {
		return true
	}

	ctx := context.Background()
	key := fmt.Sprintf("ratelimit:api:%s", userID)

	count, err := config.RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return true
	}

	if count == 1 {
		config.RedisClient.Expire(ctx, key, duration)
	}

	return count <= int64(limit)
}
