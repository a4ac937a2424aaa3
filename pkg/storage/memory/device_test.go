package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/luxmesh/lampd/pkg/model"
	"github.com/luxmesh/lampd/pkg/storage"
)

func TestFindByDeviceIDNotFound(t *testing.T) {
	s := NewStore()

	if _, err := s.Devices().FindByDeviceID("nope"); err != storage.ErrNotFound {
		t.Fatal("expected ErrNotFound, got", err)
	}
}

func TestUpsertCommandCreatesRecord(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()

	m, err := s.Devices().UpsertCommand("lamp-1", model.Command{Mode: "solid"}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !m.CreatedAt.Equal(now) || !m.UpdatedAt.Equal(now) {
		t.Error("expected createdAt and updatedAt set to write time")
	}
	if m.LastSeen != nil {
		t.Error("a command write must not touch lastSeen")
	}
}

func TestUpsertPreservesOtherHalf(t *testing.T) {
	s := NewStore()
	t1 := time.Now().UTC()
	t2 := t1.Add(time.Second)

	if _, err := s.Devices().UpsertCommand("lamp-1", model.Command{Mode: "solid"}, t1); err != nil {
		t.Fatal(err)
	}
	m, err := s.Devices().UpsertState("lamp-1", model.StateDocument{"rssi": -50}, t2)
	if err != nil {
		t.Fatal(err)
	}

	if m.LastCommand == nil || m.LastCommand.Mode != "solid" {
		t.Error("a state write must preserve lastCommand, got", m.LastCommand)
	}
	if !m.CreatedAt.Equal(t1) {
		t.Error("createdAt is write-once, got", m.CreatedAt)
	}
	if !m.UpdatedAt.Equal(t2) {
		t.Error("updatedAt must follow the latest write, got", m.UpdatedAt)
	}
	if m.LastSeen == nil || !m.LastSeen.Equal(t2) {
		t.Error("lastSeen must follow the state write, got", m.LastSeen)
	}
}

func TestFetchAllOrder(t *testing.T) {
	s := NewStore()
	base := time.Now().UTC()

	if _, err := s.Devices().UpsertState("a", nil, base.Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Devices().UpsertState("b", nil, base); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Devices().UpsertCommand("c", model.Command{}, base); err != nil {
		t.Fatal(err)
	}

	models, err := s.Devices().FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 3 {
		t.Fatal("expected 3 devices, got", len(models))
	}
	if models[0].DeviceID != "b" || models[1].DeviceID != "a" || models[2].DeviceID != "c" {
		t.Fatalf("unexpected order: %s, %s, %s",
			models[0].DeviceID, models[1].DeviceID, models[2].DeviceID)
	}
}

func TestConcurrentUpserts(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Devices().UpsertCommand("shared", model.Command{Brightness: i}, now); err != nil {
				t.Error(err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Devices().UpsertState(fmt.Sprintf("dev-%d", i), nil, now); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	models, err := s.Devices().FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 11 {
		t.Fatal("expected 11 devices, got", len(models))
	}

	m, err := s.Devices().FindByDeviceID("shared")
	if err != nil {
		t.Fatal(err)
	}
	if m.LastCommand == nil {
		t.Fatal("expected one of the concurrent commands to win")
	}
}
