package memory

import "github.com/luxmesh/lampd/pkg/storage"

// Store contains all memory-based sub-stores for managing the persistent models
type store struct {
	devices *deviceStore
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		devices: newDeviceStore(),
	}
}

// Devices returns a sub-store for managing the device model
func (s *store) Devices() storage.DeviceStore {
	return s.devices
}
