package models

// ============================================================================
// TASK STATUS
// ============================================================================

// Status is the lifecycle state of a task
type Status string

// Status values. These are the only strings ever persisted in tasks.status.
const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// DefaultStatus is assigned to every newly created task
const DefaultStatus = StatusCreated

// AllStatuses lists every valid status in lifecycle order
var AllStatuses = []Status{StatusCreated, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a raw string into a Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// ============================================================================
// FIELD LIMITS
// ============================================================================

// MaxTitleLength is the maximum number of characters in a task title
const MaxTitleLength = 255
