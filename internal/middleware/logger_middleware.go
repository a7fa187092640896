package middleware

import (
	"net/http"
	"time"

	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GinZapLogger() gin.HandlerFunc {
	log := logger.L
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Log details after request is processed
		latency := time.Since(start)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("ip", clientIP),
			zap.Duration("latency", latency),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if errorMessage != "" {
			fields = append(fields, zap.String("error", errorMessage))
		}

		// Choose log level based on status code
		switch {
		case statusCode >= http.StatusInternalServerError:
			log.Error("Request", fields...)
		case statusCode >= http.StatusBadRequest:
			log.Warn("Request", fields...)
		default:
			log.Info("Request", fields...)
		}
	}
}
