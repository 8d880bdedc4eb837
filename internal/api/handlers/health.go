// Package handlers implements HTTP handlers for the offer-tracker control API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AliveMessage is the plain-text body served at the root path.
const AliveMessage = "offer-tracker is alive"

// StatusResponse is the JSON body of the probe endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Pinger reports whether the notification record is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(p Pinger) *HealthHandler {
	return &HealthHandler{pinger: p}
}

// Root answers keep-alive pings from uptime monitors.
//
// @Summary Keep-alive
// @Tags health
// @Produce plain
// @Success 200 {string} string "offer-tracker is alive"
// @Router / [get]
func (*HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, AliveMessage)
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the state store answers, 503 otherwise.
//
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.pinger.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// RegisterHealthRoutes mounts the plain echo health routes.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/", h.Root)
	e.HEAD("/", h.Root)
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
