package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/api/resource"
	"github.com/luxmesh/lampd/pkg/registry"
	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// realtimeEventsHandler upgrades the connection to a websocket and forwards
// every registry event to the observer. This feeds dashboard observers only;
// devices stay strictly poll-based. The endpoint requires a NATS connection.
func (h *Handler) realtimeEventsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.nc == nil {
			return c.NoContent(http.StatusNotImplemented)
		}

		conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
		if err != nil {
			log.Error("api: failed to upgrade to websocket: ", err)
			return nil
		}

		sub, err := h.nc.Subscribe(registry.EventSubject("*"), func(msg *nats.Msg) {
			topic := strings.TrimPrefix(msg.Subject, registry.EventSubject(""))

			var data interface{}
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				return
			}

			event := resource.NewRealtimeEvent(topic, data)
			out, _ := json.Marshal(event)
			if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
				log.Error("api: failed to send realtime event: ", err)
			}
		})
		if err != nil {
			log.Error("api: failed to subscribe to registry events: ", err)
			conn.Close()
			return nil
		}

		go func() {
			defer conn.Close()
			defer sub.Unsubscribe()

			// Drain client frames until the peer goes away
			for {
				if _, _, err := wsutil.ReadClientData(conn); err != nil {
					return
				}
			}
		}()

		return nil
	}
}
