// Package middleware provides Echo middleware for the offer-tracker API.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/offer-tracker/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so scanners
// probing random URLs cannot grow the label set.
const unmatchedRoute = "unmatched"

// probeGauges holds the up/down gauge for each probe path that has one.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and count
// per route template. Probe paths and /metrics are not counted; /healthz
// and /readyz set their up/down gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Request().URL.Path
			if _, probe := probePaths[path]; probe || path == "/metrics" {
				if g, ok := probeGauges[path]; ok {
					g.Set(boolGauge(isSuccess(c.Response().Status)))
				}
				return err
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			labels := []string{
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
			}

			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
