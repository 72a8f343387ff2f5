package enums

import "fmt"

// UpdateStatus is the tagged outcome of a versioned write. The zero value is
// UpdateStatusFailed and is never reported alongside a nil error.
type UpdateStatus int

const (
	UpdateStatusFailed UpdateStatus = iota
	UpdateStatusOk
	UpdateStatusStale
)

var updateStatusNames = map[UpdateStatus]string{
	UpdateStatusFailed: "failed",
	UpdateStatusOk:     "ok",
	UpdateStatusStale:  "stale",
}

// String implements fmt.Stringer.
func (s UpdateStatus) String() string {
	if name, ok := updateStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("update_status(%d)", int(s))
}

// IsTerminal reports whether the status describes a completed attempt.
func (s UpdateStatus) IsTerminal() bool {
	return s == UpdateStatusOk || s == UpdateStatusStale
}

// ParseUpdateStatus converts a status name into UpdateStatus.
func ParseUpdateStatus(value string) (UpdateStatus, error) {
	for status, name := range updateStatusNames {
		if name == value {
			return status, nil
		}
	}
	return UpdateStatusFailed, fmt.Errorf("invalid update status %q", value)
}
