package registry

import (
	"fmt"
	"math"

	"github.com/luxmesh/lampd/pkg/model"
)

// ValidationError describes why a submitted command was rejected. It maps to
// a 400 at the API boundary and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseCommand validates a decoded command payload and fills in the defaults
// for absent fields. Unrecognized fields are discarded. The input is the raw
// result of a JSON decode, so numbers arrive as float64. A nil input (absent
// or unparseable body) is a validation failure, not an empty command.
func ParseCommand(raw map[string]interface{}) (*model.Command, error) {
	if raw == nil {
		return nil, validationErrorf("expected a command object, got null")
	}

	cmd := &model.Command{
		Mode:       "off",
		Color:      "#000000",
		Brightness: 128,
		Speed:      5,
		Duration:   0,
	}

	if v, ok := raw["mode"]; ok {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, validationErrorf("mode must be a non-empty string")
		}
		cmd.Mode = s
	}

	if v, ok := raw["color"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, validationErrorf("color must be a string")
		}
		cmd.Color = s
	}

	if v, ok := raw["brightness"]; ok {
		n, err := intField("brightness", v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 255 {
			return nil, validationErrorf("brightness must be between 0 and 255, got %d", n)
		}
		cmd.Brightness = n
	}

	if v, ok := raw["speed"]; ok {
		n, err := intField("speed", v)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 10 {
			return nil, validationErrorf("speed must be between 1 and 10, got %d", n)
		}
		cmd.Speed = n
	}

	if v, ok := raw["segment"]; ok {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, validationErrorf("segment must be a pair of integers")
		}
		seg := make([]int, 2)
		for i, elem := range pair {
			n, err := intField("segment", elem)
			if err != nil {
				return nil, err
			}
			seg[i] = n
		}
		cmd.Segment = seg
	}

	if v, ok := raw["duration"]; ok {
		n, err := intField("duration", v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 3600 {
			return nil, validationErrorf("duration must be between 0 and 3600, got %d", n)
		}
		cmd.Duration = n
	}

	return cmd, nil
}

func intField(name string, v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, validationErrorf("%s must be an integer", name)
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, validationErrorf("%s must be an integer", name)
	}
}
