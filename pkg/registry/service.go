package registry

import (
	"encoding/json"
	"time"

	"github.com/luxmesh/lampd/pkg/model"
	"github.com/luxmesh/lampd/pkg/storage"
	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const eventSubjectPrefix = "lampd.registry.v1.events."

// Event topics published to NATS
const (
	TopicStateReported = "state-reported"
	TopicCommandIssued = "command-issued"
)

// EventSubject returns the NATS subject for a registry event topic.
func EventSubject(topic string) string {
	return eventSubjectPrefix + topic
}

// PoweredOffCommand is what an unknown or never-commanded device receives
// when it polls. Deliberately not the validator's defaults: a device nobody
// ever configured must stay dark, not light up at half brightness.
func PoweredOffCommand() *model.Command {
	return &model.Command{
		Mode:       "off",
		Color:      "#000000",
		Brightness: 0,
		Speed:      5,
		Segment:    []int{1, 59},
		Duration:   0,
	}
}

// DeviceStatus is a device record together with its derived liveness.
type DeviceStatus struct {
	model.Device
	Online bool
}

// Service implements the device registry: last-reported state, last-issued
// command and derived liveness on top of an atomic per-record store. The
// service itself is stateless; all synchronization is delegated to the
// store's upsert primitive.
type Service struct {
	store storage.Interface
	nc    *nats.Conn
	now   func() time.Time
}

// NewService creates a registry service. nc may be nil, which disables
// event publication.
func NewService(store storage.Interface, nc *nats.Conn) *Service {
	return &Service{
		store: store,
		nc:    nc,
		now:   time.Now,
	}
}

// GetLastCommand returns the most recent command issued to the device, or
// the powered-off command when the device is unknown or was never commanded.
// Absence of a device is not an error.
func (s *Service) GetLastCommand(deviceID string) (*model.Command, error) {
	m, err := s.store.Devices().FindByDeviceID(deviceID)
	if err == storage.ErrNotFound {
		return PoweredOffCommand(), nil
	} else if err != nil {
		return nil, err
	}

	if m.LastCommand == nil {
		return PoweredOffCommand(), nil
	}

	return m.LastCommand, nil
}

// SetCommand validates the submitted payload and stores the normalized
// command on the device record, creating the record for a device that never
// reported. Nothing is written when validation fails.
func (s *Service) SetCommand(deviceID string, raw map[string]interface{}) (*model.Command, error) {
	cmd, err := ParseCommand(raw)
	if err != nil {
		return nil, err
	}

	m, err := s.store.Devices().UpsertCommand(deviceID, *cmd, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.publishEvent(TopicCommandIssued, deviceID, m.LastCommand)

	return m.LastCommand, nil
}

// ReportState stores a device's self-reported telemetry wholesale. The
// document is schema-less: any shape is accepted and persisted verbatim,
// augmented with the device ID, the report timestamp in epoch milliseconds
// and the best-effort origin address.
func (s *Service) ReportState(deviceID string, telemetry model.StateDocument, sourceAddr string) error {
	now := s.now().UTC()

	doc := make(model.StateDocument, len(telemetry)+3)
	for k, v := range telemetry {
		doc[k] = v
	}
	doc["devId"] = deviceID
	doc["ts"] = now.UnixMilli()
	doc["ip"] = sourceAddr

	if _, err := s.store.Devices().UpsertState(deviceID, doc, now); err != nil {
		return err
	}

	s.publishEvent(TopicStateReported, deviceID, doc)

	return nil
}

// ListDevices returns every known device, most recently seen first, each
// annotated with its liveness at call time. Intended for small fleets; there
// is no pagination.
func (s *Service) ListDevices() ([]DeviceStatus, error) {
	models, err := s.store.Devices().FetchAll()
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]DeviceStatus, 0, len(models))
	for _, m := range models {
		out = append(out, DeviceStatus{Device: m, Online: IsOnline(m.LastSeen, now)})
	}

	return out, nil
}

// publishEvent is best effort: a failed or absent NATS connection never
// fails the registry operation that triggered it.
func (s *Service) publishEvent(topic, deviceID string, data interface{}) {
	if s.nc == nil {
		return
	}

	msg := struct {
		DeviceID  string      `json:"devId"`
		Timestamp time.Time   `json:"timestamp"`
		Data      interface{} `json:"data"`
	}{
		DeviceID:  deviceID,
		Timestamp: s.now().UTC(),
		Data:      data,
	}

	out, err := json.Marshal(msg)
	if err != nil {
		log.Error("registry: failed to marshal event: ", err)
		return
	}

	if err := s.nc.Publish(EventSubject(topic), out); err != nil {
		log.Error("registry: failed to publish event: ", err)
	}
}
