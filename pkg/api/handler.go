package api

import (
	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/registry"
	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Handler contains all properties to serve the API
type Handler struct {
	nc       *nats.Conn
	registry *registry.Service
}

// NewHandler create a new API handler
func NewHandler(nc *nats.Conn, reg *registry.Service) *Handler {
	return &Handler{
		nc:       nc,
		registry: reg,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api")
	api.GET("/devices", h.handleFetchDevices)

	api.GET("/devices/:devId/command", h.handleGetLastCommand)
	api.POST("/devices/:devId/command", h.handleSetCommand)

	api.POST("/devices/:devId/state", h.handleReportState)

	api.Any("/realtime-events", h.realtimeEventsHandler())
}
