package middleware

import (
	"ugc-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID makes sure every request and response carries an X-Request-ID
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(logger.RequestIDKey)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(logger.RequestIDKey, requestID)
			}
			c.Response().Header().Set(logger.RequestIDKey, requestID)
			c.Set(logger.RequestIDKey, requestID)

			return next(c)
		}
	}
}
