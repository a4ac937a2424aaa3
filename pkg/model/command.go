package model

// Command is the last lighting instruction issued to a device. It is a value
// object embedded on the device record and never persisted on its own.
// Segment holds exactly two elements when present.
type Command struct {
	Mode       string `json:"mode"`
	Color      string `json:"color"`
	Brightness int    `json:"brightness"`
	Speed      int    `json:"speed"`
	Segment    []int  `json:"segment,omitempty"`
	Duration   int    `json:"duration"`
}
