package resource

import (
	"time"

	"github.com/luxmesh/lampd/pkg/model"
	"github.com/luxmesh/lampd/pkg/registry"
)

// DeviceResource is the wire shape of a device record. The store key is the
// device ID itself; no internal identifier leaves the API.
type DeviceResource struct {
	DeviceID    string              `json:"devId"`
	Online      bool                `json:"online"`
	LastState   model.StateDocument `json:"lastState,omitempty"`
	LastSeen    *time.Time          `json:"lastSeen,omitempty"`
	LastCommand *model.Command      `json:"lastCommand,omitempty"`
	CreatedAt   *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time          `json:"updatedAt,omitempty"`
}

type DeviceListResource struct {
	Devices []*DeviceResource `json:"devices"`
}

func NewDevice(d *registry.DeviceStatus) (out *DeviceResource) {
	out = &DeviceResource{
		DeviceID:    d.DeviceID,
		Online:      d.Online,
		LastState:   d.LastState,
		LastSeen:    d.LastSeen,
		LastCommand: d.LastCommand,
	}

	if !d.CreatedAt.IsZero() {
		out.CreatedAt = &time.Time{}
		*out.CreatedAt = d.CreatedAt
	}
	if !d.UpdatedAt.IsZero() {
		out.UpdatedAt = &time.Time{}
		*out.UpdatedAt = d.UpdatedAt
	}

	return // out
}

// NewDeviceList preserves the registry's ordering: most recently seen first.
func NewDeviceList(m []registry.DeviceStatus) (out *DeviceListResource) {
	out = &DeviceListResource{
		Devices: make([]*DeviceResource, 0, len(m)),
	}

	for i := range m {
		out.Devices = append(out.Devices, NewDevice(&m[i]))
	}

	return // out
}
