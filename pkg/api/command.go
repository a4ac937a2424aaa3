package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/api/resource"
	"github.com/luxmesh/lampd/pkg/registry"
)

func (h *Handler) handleGetLastCommand(c echo.Context) error {
	cmd, err := h.registry.GetLastCommand(c.Param("devId"))
	if err != nil {
		return noStore(c, http.StatusInternalServerError, resource.NewError(err))
	}

	return noStore(c, http.StatusOK, cmd)
}

func (h *Handler) handleSetCommand(c echo.Context) error {
	deviceID := c.Param("devId")

	cmd, err := h.registry.SetCommand(deviceID, decodeCommandBody(c))
	if verr, ok := err.(*registry.ValidationError); ok {
		return noStore(c, http.StatusBadRequest, resource.NewError(verr))
	} else if err != nil {
		return noStore(c, http.StatusInternalServerError, resource.NewError(err))
	}

	return noStore(c, http.StatusOK, resource.NewCommandAccepted(deviceID, cmd))
}

// decodeCommandBody accepts either a JSON object body or a form submission
// carrying the JSON-encoded command in a single "json" field. Anything that
// does not decode to an object comes back nil, which the validator rejects.
func decodeCommandBody(c echo.Context) map[string]interface{} {
	ctype := c.Request().Header.Get(echo.HeaderContentType)

	var raw map[string]interface{}
	switch {
	case strings.Contains(ctype, echo.MIMEApplicationJSON):
		if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
			return nil
		}
	case strings.Contains(ctype, echo.MIMEApplicationForm):
		val := c.FormValue("json")
		if val == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(val), &raw); err != nil {
			return nil
		}
	}

	return raw
}
