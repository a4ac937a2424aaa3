package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/luxmesh/lampd/pkg/model"
	"github.com/luxmesh/lampd/pkg/storage"
)

type deviceStore struct {
	store map[string]model.Device
	sync.RWMutex
}

func newDeviceStore() *deviceStore {
	return &deviceStore{
		store: make(map[string]model.Device),
	}
}

func (s *deviceStore) FetchAll() ([]model.Device, error) {
	s.RLock()
	defer s.RUnlock()
	models := make([]model.Device, 0, len(s.store))

	for _, m := range s.store {
		models = append(models, m)
	}

	// Most recently seen first, never-seen devices last
	sort.SliceStable(models, func(i, j int) bool {
		a, b := models[i].LastSeen, models[j].LastSeen
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	return models, nil
}

func (s *deviceStore) FindByDeviceID(deviceID string) (*model.Device, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[deviceID]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *deviceStore) UpsertCommand(deviceID string, cmd model.Command, now time.Time) (*model.Device, error) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[deviceID]
	if !ok {
		m = model.Device{DeviceID: deviceID, CreatedAt: now}
	}

	m.LastCommand = &cmd
	m.UpdatedAt = now

	s.store[deviceID] = m

	return &m, nil
}

func (s *deviceStore) UpsertState(deviceID string, doc model.StateDocument, now time.Time) (*model.Device, error) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[deviceID]
	if !ok {
		m = model.Device{DeviceID: deviceID, CreatedAt: now}
	}

	seen := now
	m.LastState = doc
	m.LastSeen = &seen
	m.UpdatedAt = now

	s.store[deviceID] = m

	return &m, nil
}
