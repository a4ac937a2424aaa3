package registry

import "time"

// GraceWindow is how long after its last state report a device still counts
// as online. Devices heartbeat roughly every 30 seconds; the window leaves
// margin on top of that.
const GraceWindow = 35 * time.Second

// IsOnline reports whether a device whose most recent state report arrived
// at lastSeen counts as online at the given instant. A device that never
// reported is offline.
func IsOnline(lastSeen *time.Time, now time.Time) bool {
	return lastSeen != nil && now.Sub(*lastSeen) <= GraceWindow
}
