package logger

import (
	"time"

	"inventario-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	RequestIDHeader = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

// New builds the process logger. Development mode switches to console output at debug level.
func New(appEnv string, cfg config.LoggerConfig) (*zap.Logger, error) {
	var zc zap.Config
	if appEnv == "development" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	return zc.Build()
}

// Middleware logs one line per request and tags it with a request id.
func Middleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(CtxRequestIDKey, reqID)
		c.Set(RequestIDHeader, reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("istek tamamlandı", fields...)
		} else {
			log.Info("istek tamamlandı", fields...)
		}
		return err
	}
}

// RequestID returns the id assigned by Middleware, if any.
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(CtxRequestIDKey).(string); ok {
		return v
	}
	return ""
}
