package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePaths are hit by uptime checkers every few seconds. Only the first
// success per path is logged; failures are always logged at WARN.
var probePaths = map[string]struct{}{
	"/":        {},
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu     sync.Mutex
		logged = make(map[string]bool)
	)

	// quiet reports whether a successful probe hit was already logged once.
	quiet := func(path string, status int) bool {
		if _, ok := probePaths[path]; !ok || status >= http.StatusBadRequest {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		if logged[path] {
			return true
		}
		logged[path] = true
		return false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			if quiet(path, status) {
				return err
			}

			level := slog.LevelInfo
			if status >= http.StatusBadRequest {
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
