package storage

import (
	"time"

	"github.com/luxmesh/lampd/pkg/model"
)

// Interface is implemented by the storage
type Interface interface {
	Devices() DeviceStore
}

// DeviceStore is responsible for managing the Device model.
//
// Both upsert operations are atomic against a single record: CreatedAt is
// set on first insert only, UpdatedAt on every write, and concurrent writers
// to the same device resolve last-write-wins with no interleaving of fields.
// The registry adds no locking of its own on top of this primitive.
type DeviceStore interface {
	// FetchAll returns every device ordered by LastSeen descending; devices
	// that never reported state sort last.
	FetchAll() ([]model.Device, error)
	FindByDeviceID(deviceID string) (*model.Device, error)
	// UpsertCommand replaces LastCommand wholesale, creating the record if
	// the device is unknown.
	UpsertCommand(deviceID string, cmd model.Command, now time.Time) (*model.Device, error)
	// UpsertState replaces LastState wholesale and advances LastSeen,
	// creating the record if the device is unknown.
	UpsertState(deviceID string, doc model.StateDocument, now time.Time) (*model.Device, error)
}
