package middleware

import (
	"github.com/labstack/echo/v4"
)

// Common returns the middleware applied to every proxied route.
func Common() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{ForwardRequestID()}
}

// ForwardRequestID copies the id assigned by the RequestID middleware onto the
// inbound request so the upstream service logs the same id.
func ForwardRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Header.Get(echo.HeaderXRequestID) == "" {
				if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
					req.Header.Set(echo.HeaderXRequestID, id)
				}
			}
			return next(c)
		}
	}
}
