package logger

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewEchoRequestLogger builds a request-logging middleware for Echo backed by zap.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		HandleError: true,

		LogLatency:      true,
		LogRemoteIP:     true,
		LogMethod:       true,
		LogURI:          true,
		LogRoutePath:    true,
		LogRequestID:    true,
		LogUserAgent:    true,
		LogStatus:       true,
		LogError:        true,
		LogResponseSize: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("remote_ip", v.RemoteIP),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.String("request_id", v.RequestID),
				zap.String("user_agent", v.UserAgent),
				zap.Int("status", v.Status),
				zap.Int64("response_size", v.ResponseSize),
				zap.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				logger.Error("http request", fields...)
				return nil
			}

			if v.Status >= 500 {
				logger.Error("http request", fields...)
			} else if v.Status >= 400 {
				logger.Warn("http request", fields...)
			} else {
				logger.Info("http request", fields...)
			}
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}
