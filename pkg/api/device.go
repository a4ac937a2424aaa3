package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/api/resource"
)

// noStore writes a JSON response that intermediaries must never cache:
// devices poll for commands and the dashboard polls the listing, so a stale
// cached answer defeats both.
func noStore(c echo.Context, code int, body interface{}) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(code, body)
}

func (h *Handler) handleFetchDevices(c echo.Context) error {
	m, err := h.registry.ListDevices()
	if err != nil {
		return noStore(c, http.StatusInternalServerError, resource.NewError(err))
	}

	return noStore(c, http.StatusOK, resource.NewDeviceList(m))
}
