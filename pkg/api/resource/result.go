package resource

import "github.com/luxmesh/lampd/pkg/model"

// CommandAcceptedResource acknowledges a stored command.
type CommandAcceptedResource struct {
	OK       bool           `json:"ok"`
	DeviceID string         `json:"devId"`
	Command  *model.Command `json:"cmd"`
}

func NewCommandAccepted(deviceID string, cmd *model.Command) *CommandAcceptedResource {
	return &CommandAcceptedResource{
		OK:       true,
		DeviceID: deviceID,
		Command:  cmd,
	}
}

// AcceptedResource acknowledges a stored state report.
type AcceptedResource struct {
	OK bool `json:"ok"`
}

func NewAccepted() *AcceptedResource {
	return &AcceptedResource{OK: true}
}

type ErrorResource struct {
	Error string `json:"error"`
}

func NewError(err error) *ErrorResource {
	return &ErrorResource{Error: err.Error()}
}
