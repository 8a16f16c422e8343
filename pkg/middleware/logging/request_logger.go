package loggingmw

import (
	"log/slog"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/logging"
)

// RequestLogger stores a logger tagged with the request's route and id in the
// request context and logs one line per request. Requests to quiet routes,
// such as probes and /metrics, get the logger but no completion line.
func RequestLogger(base *slog.Logger, quiet ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
				l = l.With("error", err.Error())
			}
			if slices.Contains(quiet, c.Path()) {
				return nil
			}

			res := c.Response()
			l.Log(req.Context(), levelFor(res.Status), "request completed",
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", res.Size,
			)
			return nil
		}
	}
}

// requestID prefers the caller's id over the one RequestID generated.
func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
