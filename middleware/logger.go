package middleware

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"motormandi_go/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger           *zap.Logger
	accessLogChannel chan *AccessLog
)

// AccessLog is one structured access-log record
type AccessLog struct {
	Time       time.Time `json:"time"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Query      string    `json:"query,omitempty"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent,omitempty"`
	StatusCode int       `json:"status_code"`
	Latency    int64     `json:"latency_ms"`
	UserID     string    `json:"user_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// InitLogger configures zap and starts the access-log workers
func InitLogger(mode string) error {
	var err error
	var zapConfig zap.Config

	if mode == "debug" || mode == "" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err = zapConfig.Build()
	if err != nil {
		return err
	}

	accessLogChannel = make(chan *AccessLog, 1000)
	go startLogWorkers()

	return nil
}

// startLogWorkers drains the access-log channel concurrently
func startLogWorkers() {
	workerCount := 3

	for i := 0; i < workerCount; i++ {
		go func() {
			for accessLog := range accessLogChannel {
				accessLog.process()
			}
		}()
	}
}

// process writes one record to zap and mirrors it into a Redis stream
func (al *AccessLog) process() {
	logger.Info("access_log",
		zap.String("method", al.Method),
		zap.String("path", al.Path),
		zap.String("query", al.Query),
		zap.String("ip", al.IP),
		zap.Int("status_code", al.StatusCode),
		zap.Int64("latency_ms", al.Latency),
		zap.String("user_id", al.UserID),
		zap.String("request_id", al.RequestID),
		zap.String("error", al.Error),
	)

	// Redis stream sink for log analysis; best effort
	go func() {
		if config.RedisClient != nil {
			ctx := context.Background()
			logData, _ := json.Marshal(al)

			config.RedisClient.XAdd(ctx, &redis.XAddArgs{
				Stream: "access_logs",
				Values: map[string]interface{}{
					"timestamp":   al.Time.Unix(),
					"method":      al.Method,
					"path":        al.Path,
					"status_code": al.StatusCode,
					"latency_ms":  al.Latency,
					"ip":          al.IP,
					"user_id":     al.UserID,
					"full_data":   string(logData),
				},
			})

			config.RedisClient.XTrimMaxLen(ctx, "access_logs", 100000)
		}
	}()
}

// Logger returns the access-logging middleware
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)

		c.Next()

		duration := time.Since(start)

		accessLog := &AccessLog{
			Time:       start,
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Query:      c.Request.URL.RawQuery,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			StatusCode: c.Writer.Status(),
			Latency:    duration.Milliseconds(),
			UserID:     c.GetString("user_id"),
			RequestID:  requestID,
		}

		if len(c.Errors) > 0 {
			accessLog.Error = c.Errors.String()
		}

		// Never block the request on logging; drop when the queue is full
		select {
		case accessLogChannel <- accessLog:
		default:
			log.Printf("Log channel is full, dropping log: %s %s", accessLog.Method, accessLog.Path)
		}

		c.Header("X-Request-ID", requestID)
	}
}

// ErrorLogger records an error-level message
func ErrorLogger(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, fields...)
	}
}

// InfoLogger records an info-level message
func InfoLogger(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

// FlushLogger flushes buffered log entries
func FlushLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
