package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/api/resource"
	"github.com/luxmesh/lampd/pkg/model"
)

func (h *Handler) handleReportState(c echo.Context) error {
	deviceID := c.Param("devId")

	// Telemetry ingestion is best effort: an unparseable body is stored as
	// an empty document rather than rejected.
	var doc model.StateDocument
	if err := json.NewDecoder(c.Request().Body).Decode(&doc); err != nil {
		doc = model.StateDocument{}
	}

	addr := c.Request().Header.Get(echo.HeaderXForwardedFor)
	if addr == "" {
		addr = "unknown"
	}

	if err := h.registry.ReportState(deviceID, doc, addr); err != nil {
		return noStore(c, http.StatusInternalServerError, resource.NewError(err))
	}

	return noStore(c, http.StatusOK, resource.NewAccepted())
}
