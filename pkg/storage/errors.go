package storage

type storageError string

// ErrNotFound is returned by lookups for a device that never reported state
// and was never sent a command.
const ErrNotFound = storageError("not found")

func (e storageError) Error() string {
	return string(e)
}
