package model

import "time"

// StateDocument is the schema-less telemetry snapshot a device reports about
// itself. Its shape is entirely up to the device; the registry only injects
// the report timestamp and origin address. It is replaced wholesale on every
// report, never merged field by field.
type StateDocument map[string]interface{}

// Device is a model of the persistency layer
type Device struct {
	DeviceID    string
	LastState   StateDocument
	LastSeen    *time.Time
	LastCommand *Command
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
